package netsync

import (
	"context"
	"errors"
	"sync"

	"github.com/unkn0wn-root/netsync/timecode"
)

// Master encodes events, hands payloads to a Sink and tracks the state it
// has announced. Safe for concurrent use; sends are serialized.
type Master struct {
	sink    Sink
	store   StateStore
	session string
	log     Logger
	hooks   Hooks

	mu    sync.Mutex
	state State
}

func NewMaster(opts MasterOptions) (*Master, error) {
	if opts.Sink == nil {
		return nil, errors.New("netsync: sink is required")
	}
	if opts.Store != nil && opts.Session == "" {
		return nil, errors.New("netsync: session is required with a state store")
	}
	return &Master{
		sink:    opts.Sink,
		store:   opts.Store,
		session: opts.Session,
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:   coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}

// Send encodes e and passes the payload to the sink. If the sink accepts it
// and the state changed, the new state is published to the store. A store
// failure is returned as *StoreError after the payload has gone out.
func (m *Master) Send(ctx context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendLocked(ctx, e)
}

func (m *Master) sendLocked(ctx context.Context, e Event) error {
	var buf [MaxPayloadSize]byte
	n, err := Encode(&e, buf[:])
	if err != nil {
		m.log.Debug("encode rejected", Fields{"kind": e.Kind.String(), "err": err})
		return err
	}
	if err := m.sink.Send(ctx, buf[:n]); err != nil {
		m.log.Warn("sink send failed", Fields{"kind": e.Kind.String(), "err": err})
		return err
	}

	next, changed := m.state.Apply(e)
	if !changed {
		return nil
	}
	m.commit(next)
	return m.publish(ctx, next)
}

// commit records next and fires hooks for what moved.
func (m *Master) commit(next State) {
	prev := m.state
	m.state = next
	if prev.Transport != next.Transport {
		m.hooks.TransportChanged(prev.Transport, next.Transport)
	}
	if next.Locked && (!prev.Locked || prev.Position != next.Position) {
		m.hooks.Located(next.Position)
	}
}

func (m *Master) publish(ctx context.Context, s State) error {
	if m.store == nil {
		return nil
	}
	seq, err := m.store.Publish(ctx, m.session, s)
	if err != nil {
		m.hooks.StoreError("publish", err)
		m.log.Warn("state publish failed", Fields{"session": m.session, "err": err})
		return &StoreError{Op: "publish", Session: m.session, Err: err}
	}
	m.log.Debug("state published", Fields{"session": m.session, "seq": seq, "state": s.String()})
	return nil
}

func (m *Master) Play(ctx context.Context) error { return m.Send(ctx, NewMmcPlay()) }

func (m *Master) Stop(ctx context.Context) error { return m.Send(ctx, NewMmcStop()) }

// Locate sends an MMC locate to tc.
func (m *Master) Locate(ctx context.Context, tc timecode.Timecode) error {
	return m.Send(ctx, LocateAt(tc))
}

// FullFrame sends an MTC full frame at tc.
func (m *Master) FullFrame(ctx context.Context, tc timecode.Timecode) error {
	return m.Send(ctx, FullFrameAt(tc))
}

// QuarterFrames sends the eight quarter frames for tc and then records tc as
// the current position. The sequence is not interleaved with other sends.
// tc must be a valid 30 fps timecode; nothing is sent otherwise.
func (m *Master) QuarterFrames(ctx context.Context, tc timecode.Timecode) error {
	if err := tc.Validate(); err != nil {
		return newError(CodeInvalidEventType, "quarter frames", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, q := range tc.QuarterFrames() {
		if err := m.sendLocked(ctx, NewMtcQuarterFrame(q.Type, q.Value)); err != nil {
			return err
		}
	}
	next := m.state
	next.Position = tc
	next.Locked = true
	if next == m.state {
		return nil
	}
	m.commit(next)
	return m.publish(ctx, next)
}

// State returns the state announced so far.
func (m *Master) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
