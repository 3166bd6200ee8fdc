package netsync

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/netsync/timecode"
)

// Transport is the play state of a player.
type Transport uint8

const (
	Stopped Transport = iota
	Playing
)

func (t Transport) String() string {
	switch t {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("transport(%d)", uint8(t))
	}
}

// State is what a follower needs to line up with its master. Locked is set
// once a position has been received.
type State struct {
	Transport Transport
	Position  timecode.Timecode
	Locked    bool
}

// Apply returns the state after e and whether anything changed. Quarter
// frames are assembled by the Follower and never change state here.
func (s State) Apply(e Event) (State, bool) {
	next := s
	switch e.Kind {
	case KindMmcStop:
		next.Transport = Stopped
	case KindMmcPlay:
		next.Transport = Playing
	case KindMtcFullFrame, KindMmcLocate:
		tc, ok := e.Timecode()
		if !ok {
			return s, false
		}
		next.Position = tc
		next.Locked = true
	default:
		return s, false
	}
	return next, next != s
}

func (s State) String() string {
	if !s.Locked {
		return s.Transport.String() + " unlocked"
	}
	return s.Transport.String() + " @" + s.Position.String()
}

// Sink moves encoded payloads to followers. Implementations must not retain
// payload after Send returns.
type Sink interface {
	Send(ctx context.Context, payload []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, payload []byte) error

func (f SinkFunc) Send(ctx context.Context, payload []byte) error { return f(ctx, payload) }

// StateStore keeps the last published State per session so late followers
// can catch up. seq increases with every publish for a session.
type StateStore interface {
	Publish(ctx context.Context, session string, s State) (seq uint64, err error)
	Latest(ctx context.Context, session string) (s State, seq uint64, ok bool, err error)
}
