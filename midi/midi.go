// Package midi converts between netsync events and the raw MIDI messages a
// master reads from or a follower plays into a local MIDI port.
//
//	quarter frame  F1 dd
//	full frame     F0 7F dev 01 01 hh mm ss ff F7
//	stop, play     F0 7F dev 06 01|02 F7
//	locate         F0 7F dev 06 44 06 01 hh mm ss ff 00 F7
package midi

import (
	"errors"

	"github.com/unkn0wn-root/netsync"
)

const (
	sysexStart   = 0xF0
	sysexEnd     = 0xF7
	quarterFrame = 0xF1
	realTime     = 0x7F

	subFullFrame = 0x01
	subMMC       = 0x06

	mmcStop         = 0x01
	mmcPlay         = 0x02
	mmcDeferredPlay = 0x03
	mmcLocate       = 0x44

	// Broadcast is the all-call device id.
	Broadcast byte = 0x7F

	// MaxMessageSize is the longest message this package produces (locate).
	MaxMessageSize = 13
)

var (
	ErrNotSync   = errors.New("midi: not a sync message")
	ErrDataByte  = errors.New("midi: data byte has status bit set")
	ErrTruncated = errors.New("midi: message truncated")
)

func masterErr(cause error) error {
	return &netsync.Error{Code: netsync.CodeInvalidMasterEvent, Op: "midi.decode", Err: cause}
}

func eventErr(cause error) error {
	return &netsync.Error{Code: netsync.CodeInvalidEventType, Op: "midi.encode", Err: cause}
}

func dataOK(b ...byte) bool {
	for _, c := range b {
		if c&0x80 != 0 {
			return false
		}
	}
	return true
}

// Append renders e addressed to device and appends it to dst. On error dst
// is returned unchanged.
func Append(dst []byte, e netsync.Event, device byte) ([]byte, error) {
	if !e.Valid() {
		return dst, eventErr(nil)
	}
	if !dataOK(device) {
		return dst, eventErr(ErrDataByte)
	}
	body := e.Bytes()
	switch e.Kind {
	case netsync.KindMtcQuarterFrame:
		typ, val := body[0], body[1]
		if typ > 7 || val > 0x0F {
			return dst, eventErr(ErrDataByte)
		}
		return append(dst, quarterFrame, typ<<4|val), nil
	case netsync.KindMtcFullFrame:
		if !dataOK(body...) {
			return dst, eventErr(ErrDataByte)
		}
		dst = append(dst, sysexStart, realTime, device, subFullFrame, 0x01)
		dst = append(dst, body...)
		return append(dst, sysexEnd), nil
	case netsync.KindMmcStop:
		return append(dst, sysexStart, realTime, device, subMMC, mmcStop, sysexEnd), nil
	case netsync.KindMmcPlay:
		return append(dst, sysexStart, realTime, device, subMMC, mmcPlay, sysexEnd), nil
	case netsync.KindMmcLocate:
		if !dataOK(body...) {
			return dst, eventErr(ErrDataByte)
		}
		dst = append(dst, sysexStart, realTime, device, subMMC, mmcLocate, 0x06, 0x01)
		dst = append(dst, body...)
		return append(dst, 0x00, sysexEnd), nil
	}
	return dst, eventErr(nil)
}

// Encode renders e for the broadcast device.
func Encode(e netsync.Event) ([]byte, error) {
	return Append(make([]byte, 0, MaxMessageSize), e, Broadcast)
}

// Decode parses exactly one MIDI sync message. Anything else, including
// other MIDI traffic, yields a CodeInvalidMasterEvent error. The device id
// is not checked.
func Decode(msg []byte) (netsync.Event, error) {
	if len(msg) == 0 {
		return netsync.Event{}, masterErr(ErrTruncated)
	}
	switch msg[0] {
	case quarterFrame:
		if len(msg) != 2 {
			return netsync.Event{}, masterErr(ErrTruncated)
		}
		if !dataOK(msg[1]) {
			return netsync.Event{}, masterErr(ErrDataByte)
		}
		return netsync.NewMtcQuarterFrame(msg[1]>>4, msg[1]&0x0F), nil
	case sysexStart:
		return decodeSysex(msg)
	}
	return netsync.Event{}, masterErr(ErrNotSync)
}

func decodeSysex(msg []byte) (netsync.Event, error) {
	if len(msg) < 6 || msg[len(msg)-1] != sysexEnd {
		return netsync.Event{}, masterErr(ErrTruncated)
	}
	inner := msg[1 : len(msg)-1]
	if !dataOK(inner...) {
		return netsync.Event{}, masterErr(ErrDataByte)
	}
	if inner[0] != realTime {
		return netsync.Event{}, masterErr(ErrNotSync)
	}
	// inner[1] is the device id
	sub := inner[2:]
	switch {
	case len(sub) == 6 && sub[0] == subFullFrame && sub[1] == 0x01:
		return netsync.NewMtcFullFrame(sub[2], sub[3], sub[4], sub[5]), nil
	case len(sub) == 2 && sub[0] == subMMC:
		switch sub[1] {
		case mmcStop:
			return netsync.NewMmcStop(), nil
		case mmcPlay, mmcDeferredPlay:
			return netsync.NewMmcPlay(), nil
		}
	case len(sub) == 9 && sub[0] == subMMC && sub[1] == mmcLocate && sub[2] == 0x06 && sub[3] == 0x01:
		// sub[8] is subframes, dropped
		return netsync.NewMmcLocate(sub[4], sub[5], sub[6], sub[7]), nil
	}
	return netsync.Event{}, masterErr(ErrNotSync)
}
