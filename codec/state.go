package codec

import (
	"fmt"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/timecode"
)

// Record is the persisted form of netsync.State for the reflection-based
// codecs. Position is hh, mm, ss, ff.
type Record struct {
	Transport uint8    `json:"transport" cbor:"1,keyasint" msgpack:"transport"`
	Position  [4]uint8 `json:"position" cbor:"2,keyasint" msgpack:"position"`
	Locked    bool     `json:"locked" cbor:"3,keyasint" msgpack:"locked"`
}

func RecordOf(s netsync.State) Record {
	p := s.Position
	return Record{
		Transport: uint8(s.Transport),
		Position:  [4]uint8{p.Hours, p.Minutes, p.Seconds, p.Frames},
		Locked:    s.Locked,
	}
}

// State converts r back, rejecting unknown transport values.
func (r Record) State() (netsync.State, error) {
	t := netsync.Transport(r.Transport)
	if t != netsync.Stopped && t != netsync.Playing {
		return netsync.State{}, fmt.Errorf("codec: unknown transport %d", r.Transport)
	}
	return netsync.State{
		Transport: t,
		Position: timecode.Timecode{
			Hours:   r.Position[0],
			Minutes: r.Position[1],
			Seconds: r.Position[2],
			Frames:  r.Position[3],
		},
		Locked: r.Locked,
	}, nil
}

// States adapts a Record codec to netsync.State.
type States struct {
	Inner Codec[Record]
}

var _ Codec[netsync.State] = States{}

func (c States) Encode(s netsync.State) ([]byte, error) {
	return c.Inner.Encode(RecordOf(s))
}

func (c States) Decode(b []byte) (netsync.State, error) {
	r, err := c.Inner.Decode(b)
	if err != nil {
		return netsync.State{}, err
	}
	return r.State()
}
