package netsync

import (
	"context"
	"errors"
	"sync"

	"github.com/unkn0wn-root/netsync/timecode"
)

// Follower applies received payloads to a local State. Quarter frames are
// assembled into positions; a broken sequence is dropped, not an error.
// Safe for concurrent use.
type Follower struct {
	log      Logger
	hooks    Hooks
	onChange func(State)

	mu    sync.Mutex
	state State
	asm   timecode.Assembler
}

func NewFollower(opts FollowerOptions) *Follower {
	return &Follower{
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
		onChange: opts.OnChange,
	}
}

// Apply decodes payload and applies the event. Decode failures are returned
// as *Error and leave the state untouched.
func (f *Follower) Apply(payload []byte) (Event, error) {
	var e Event
	if err := Decode(payload, &e); err != nil {
		f.hooks.PayloadRejected(CodeOf(err), len(payload))
		f.log.Debug("payload rejected", Fields{"size": len(payload), "err": err})
		return Event{}, err
	}
	return e, f.ApplyEvent(e)
}

// ApplyEvent applies an already decoded event.
func (f *Follower) ApplyEvent(e Event) error {
	if !e.Valid() {
		return newError(CodeInvalidEventType, "apply", nil)
	}

	f.mu.Lock()
	next, changed, dropped := f.step(e)
	prev := f.state
	if changed {
		f.state = next
	}
	f.mu.Unlock()

	if dropped != nil {
		reason := dropReason(dropped)
		f.hooks.QuarterFrameDropped(reason)
		f.log.Debug("quarter frame sequence dropped", Fields{"reason": reason, "err": dropped})
	}
	if changed {
		f.notify(prev, next)
	}
	return nil
}

// step computes the state after e. dropped is the assembler error when a
// partial quarter-frame sequence was discarded. Caller holds f.mu.
func (f *Follower) step(e Event) (next State, changed bool, dropped error) {
	if e.Kind != KindMtcQuarterFrame {
		if e.Kind == KindMtcFullFrame || e.Kind == KindMmcLocate {
			// an explicit position supersedes any partial sequence
			f.asm.Reset()
		}
		next, changed = f.state.Apply(e)
		return next, changed, nil
	}

	q, _ := e.QuarterFrame()
	tc, ok, err := f.asm.Push(q)
	if err != nil {
		return f.state, false, err
	}
	if !ok {
		return f.state, false, nil
	}
	next = f.state
	next.Position = tc
	next.Locked = true
	return next, next != f.state, nil
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, timecode.ErrFrameOrder):
		return "order"
	case errors.Is(err, timecode.ErrFrameType):
		return "type"
	case errors.Is(err, timecode.ErrFrameRate):
		return "rate"
	default:
		return "value"
	}
}

func (f *Follower) notify(prev, next State) {
	if prev.Transport != next.Transport {
		f.hooks.TransportChanged(prev.Transport, next.Transport)
	}
	if next.Locked && (!prev.Locked || prev.Position != next.Position) {
		f.hooks.Located(next.Position)
	}
	if f.onChange != nil {
		f.onChange(next)
	}
}

// State returns the current state.
func (f *Follower) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Resync replaces the local state with the latest published state for
// session. ok is false when the store has nothing for it.
func (f *Follower) Resync(ctx context.Context, store StateStore, session string) (ok bool, err error) {
	if store == nil {
		return false, newError(CodeNullReference, "resync", nil)
	}
	s, seq, ok, err := store.Latest(ctx, session)
	if err != nil {
		f.hooks.StoreError("latest", err)
		f.log.Warn("state resync failed", Fields{"session": session, "err": err})
		return false, &StoreError{Op: "latest", Session: session, Err: err}
	}
	if !ok {
		f.log.Debug("state resync miss", Fields{"session": session})
		return false, nil
	}

	f.mu.Lock()
	prev := f.state
	f.state = s
	f.asm.Reset()
	f.mu.Unlock()

	f.log.Info("state resynced", Fields{"session": session, "seq": seq, "state": s.String()})
	if prev != s {
		f.notify(prev, s)
	}
	return true, nil
}
