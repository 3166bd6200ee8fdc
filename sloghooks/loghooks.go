// Package sloghooks logs netsync and statestore hook events through slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/statestore"
	"github.com/unkn0wn-root/netsync/timecode"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectedEvery uint64
	DroppedEvery  uint64
	SelfHealEvery uint64
	// LogLocate logs every position change at debug level.
	LogLocate bool
	// Optional key redactor for store keys. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectedCtr atomic.Uint64
	droppedCtr  atomic.Uint64
	selfHealCtr atomic.Uint64
}

var (
	_ netsync.Hooks    = (*Hooks)(nil)
	_ statestore.Hooks = (*Hooks)(nil)
)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) PayloadRejected(code netsync.Code, size int) {
	if h.l == nil || !sample(h.opts.RejectedEvery, &h.rejectedCtr) {
		return
	}
	h.l.Info("netsync.payload_rejected",
		"code", int(code),
		"reason", netsync.Message(code),
		"size", size)
}

func (h *Hooks) QuarterFrameDropped(reason string) {
	if h.l == nil || !sample(h.opts.DroppedEvery, &h.droppedCtr) {
		return
	}
	h.l.Debug("netsync.quarter_frame_dropped", "reason", reason)
}

func (h *Hooks) TransportChanged(from, to netsync.Transport) {
	if h.l == nil {
		return
	}
	h.l.Info("netsync.transport_changed",
		"from", from.String(),
		"to", to.String())
}

func (h *Hooks) Located(tc timecode.Timecode) {
	if h.l == nil || !h.opts.LogLocate {
		return
	}
	h.l.Debug("netsync.located", "position", tc.String())
}

func (h *Hooks) StoreError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("netsync.store_error",
		"op", op,
		"err", err)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("statestore.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) SetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("statestore.set_rejected", "key", h.redact(storageKey))
}

func (h *Hooks) SeqError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("statestore.seq_error",
		"key", h.redact(storageKey),
		"err", err)
}
