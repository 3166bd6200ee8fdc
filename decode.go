package netsync

import "github.com/unkn0wn-root/netsync/internal/wire"

// kindOf maps header flags (B ignored) and body length to a kind.
func kindOf(flags byte, n int) (Kind, bool) {
	switch flags &^ wire.FlagExtended {
	case 0:
		switch n {
		case 2:
			return KindMtcQuarterFrame, true
		case 4:
			return KindMtcFullFrame, true
		}
	case wire.FlagMMC:
		switch n {
		case 0:
			return KindMmcStop, true
		case 4:
			return KindMmcLocate, true
		}
	case wire.FlagMMC | wire.FlagVariant:
		if n == 0 {
			return KindMmcPlay, true
		}
	}
	return KindUnknown, false
}

// Decode parses exactly one payload from src into out. out is left untouched
// on error. Decode never reads outside src.
func Decode(src []byte, out *Event) error {
	if src == nil || out == nil {
		return newError(CodeNullReference, "decode", nil)
	}
	if len(src) == 0 {
		return newError(CodeInvalidSlaveEvent, "decode", wire.ErrTruncated)
	}
	h, off, err := wire.ParseHeader(src)
	if err != nil {
		return newError(CodeInvalidSlaveEvent, "decode", err)
	}
	n := int(h.Len)
	if off+n != len(src) {
		return newError(CodeInvalidSlaveEvent, "decode", errTrailing)
	}
	k, ok := kindOf(h.Flags, n)
	if !ok {
		return newError(CodeInvalidSlaveEvent, "decode", errNoKind)
	}

	ev := Event{Kind: k, BodyLen: uint8(n)}
	copy(ev.Body[:], src[off:off+n])
	*out = ev
	return nil
}

// Unmarshal is Decode returning the event by value.
func Unmarshal(src []byte) (Event, error) {
	var e Event
	if err := Decode(src, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}
