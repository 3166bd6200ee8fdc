// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    DroppedEvery:  10, // log ~every 10th dropped quarter-frame sequence
//	    RejectedEvery: 1,  // log every rejected payload
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	follower := netsync.NewFollower(netsync.FollowerOptions{Hooks: hooks})
//	store, _ := statestore.New(statestore.Options{
//	    Namespace: "studio-a",
//	    Provider:  provider,
//	    Hooks:     hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/statestore"
	"github.com/unkn0wn-root/netsync/timecode"
)

// Inner is what Hooks forwards to: payload-path hooks and store hooks.
type Inner interface {
	netsync.Hooks
	statestore.Hooks
}

// Hooks runs Inner on a small worker pool so callers never block. Events
// are dropped when the queue is full; Dropped counts them.
type Hooks struct {
	inner   Inner
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed and close(q) against sends
	closed  bool
	dropped atomic.Uint64
}

var _ Inner = (*Hooks)(nil)

func New(inner Inner, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events arriving after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded because the queue was full or
// closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) PayloadRejected(c netsync.Code, n int) { h.try(func() { h.inner.PayloadRejected(c, n) }) }
func (h *Hooks) QuarterFrameDropped(r string)          { h.try(func() { h.inner.QuarterFrameDropped(r) }) }
func (h *Hooks) Located(tc timecode.Timecode)          { h.try(func() { h.inner.Located(tc) }) }
func (h *Hooks) StoreError(op string, err error)       { h.try(func() { h.inner.StoreError(op, err) }) }
func (h *Hooks) TransportChanged(from, to netsync.Transport) {
	h.try(func() { h.inner.TransportChanged(from, to) })
}

func (h *Hooks) SelfHeal(k, r string)         { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) SetRejected(k string)         { h.try(func() { h.inner.SetRejected(k) }) }
func (h *Hooks) SeqError(k string, err error) { h.try(func() { h.inner.SeqError(k, err) }) }
