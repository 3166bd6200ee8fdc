package netsync

import "github.com/unkn0wn-root/netsync/timecode"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// Master and Follower call them on the payload path.
type Hooks interface {
	// A received payload failed to decode.
	// code is CodeInvalidSlaveEvent or CodeNullReference.
	PayloadRejected(code Code, size int)

	// A partial quarter-frame sequence was discarded.
	// reason ∈ {"order", "type", "value", "rate"}
	QuarterFrameDropped(reason string)

	// Transport moved between Stopped and Playing.
	TransportChanged(from, to Transport)

	// A full frame, locate or completed quarter-frame sequence set the position.
	Located(tc timecode.Timecode)

	// StateStore publish or latest failed.
	// op ∈ {"publish", "latest"}
	StoreError(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) PayloadRejected(Code, int)             {}
func (NopHooks) QuarterFrameDropped(string)            {}
func (NopHooks) TransportChanged(Transport, Transport) {}
func (NopHooks) Located(timecode.Timecode)             {}
func (NopHooks) StoreError(string, error)              {}
