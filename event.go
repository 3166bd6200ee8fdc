package netsync

import (
	"fmt"

	"github.com/unkn0wn-root/netsync/timecode"
)

// MaxBodySize is the body capacity of an Event.
const MaxBodySize = 8

// Kind identifies a sync event. The zero value is never valid.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMtcQuarterFrame
	KindMtcFullFrame
	KindMmcStop
	KindMmcPlay
	KindMmcLocate
)

// required body length per kind, -1 for unknown
var bodyLens = [...]int8{
	KindUnknown:         -1,
	KindMtcQuarterFrame: 2,
	KindMtcFullFrame:    4,
	KindMmcStop:         0,
	KindMmcPlay:         0,
	KindMmcLocate:       4,
}

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindMtcQuarterFrame: "mtc-quarter-frame",
	KindMtcFullFrame:    "mtc-full-frame",
	KindMmcStop:         "mmc-stop",
	KindMmcPlay:         "mmc-play",
	KindMmcLocate:       "mmc-locate",
}

// BodyLen returns the body length k requires. ok is false for kinds outside
// the known set.
func (k Kind) BodyLen() (n int, ok bool) {
	if int(k) >= len(bodyLens) || bodyLens[k] < 0 {
		return 0, false
	}
	return int(bodyLens[k]), true
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String for known kinds.
func ParseKind(s string) (Kind, bool) {
	for k := KindMtcQuarterFrame; int(k) < len(kindNames); k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// Event is one sync event. Body[:BodyLen] holds the kind's fields:
//
//	quarter frame       [type, value]
//	full frame, locate  [hours, minutes, seconds, frames]
//	stop, play          empty
//
// Field values are opaque bytes; no timecode ranges are enforced.
type Event struct {
	Kind    Kind
	Body    [MaxBodySize]byte
	BodyLen uint8
}

// Validate reports whether e has a known kind and exactly the body length
// that kind requires. A nil e is invalid.
func Validate(e *Event) bool {
	return e != nil && e.Valid()
}

func (e Event) Valid() bool {
	n, ok := e.Kind.BodyLen()
	return ok && int(e.BodyLen) == n
}

// Bytes returns the valid part of the body, clamped to its capacity.
func (e *Event) Bytes() []byte {
	n := int(e.BodyLen)
	if n > MaxBodySize {
		n = MaxBodySize
	}
	return e.Body[:n]
}

func NewMtcQuarterFrame(msgType, value uint8) Event {
	return Event{Kind: KindMtcQuarterFrame, Body: [MaxBodySize]byte{msgType, value}, BodyLen: 2}
}

func NewMtcFullFrame(hour, minute, second, frame uint8) Event {
	return Event{Kind: KindMtcFullFrame, Body: [MaxBodySize]byte{hour, minute, second, frame}, BodyLen: 4}
}

func NewMmcStop() Event { return Event{Kind: KindMmcStop} }

func NewMmcPlay() Event { return Event{Kind: KindMmcPlay} }

func NewMmcLocate(hour, minute, second, frame uint8) Event {
	return Event{Kind: KindMmcLocate, Body: [MaxBodySize]byte{hour, minute, second, frame}, BodyLen: 4}
}

// FullFrameAt is NewMtcFullFrame for tc.
func FullFrameAt(tc timecode.Timecode) Event {
	return NewMtcFullFrame(tc.Hours, tc.Minutes, tc.Seconds, tc.Frames)
}

// LocateAt is NewMmcLocate for tc.
func LocateAt(tc timecode.Timecode) Event {
	return NewMmcLocate(tc.Hours, tc.Minutes, tc.Seconds, tc.Frames)
}

// QuarterFrame returns the body of a quarter-frame event.
func (e Event) QuarterFrame() (timecode.QuarterFrame, bool) {
	if e.Kind != KindMtcQuarterFrame || !e.Valid() {
		return timecode.QuarterFrame{}, false
	}
	return timecode.QuarterFrame{Type: e.Body[0], Value: e.Body[1]}, true
}

// Timecode returns the position carried by a full-frame or locate event.
// Fields are copied as-is; use Timecode.Validate to check ranges.
func (e Event) Timecode() (timecode.Timecode, bool) {
	if (e.Kind != KindMtcFullFrame && e.Kind != KindMmcLocate) || !e.Valid() {
		return timecode.Timecode{}, false
	}
	return timecode.Timecode{
		Hours:   e.Body[0],
		Minutes: e.Body[1],
		Seconds: e.Body[2],
		Frames:  e.Body[3],
	}, true
}

func (e Event) String() string {
	if !e.Valid() {
		return fmt.Sprintf("%s(invalid len=%d)", e.Kind, e.BodyLen)
	}
	switch e.Kind {
	case KindMtcQuarterFrame:
		return fmt.Sprintf("%s{type=%d value=%d}", e.Kind, e.Body[0], e.Body[1])
	case KindMtcFullFrame, KindMmcLocate:
		tc, _ := e.Timecode()
		return fmt.Sprintf("%s{%s}", e.Kind, tc)
	default:
		return e.Kind.String()
	}
}
