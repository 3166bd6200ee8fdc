package statestore

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/codec"
	"github.com/unkn0wn-root/netsync/internal/envelope"
	pr "github.com/unkn0wn-root/netsync/provider"
	"github.com/unkn0wn-root/netsync/seqstore"
)

const (
	defaultTTL          = 24 * time.Hour
	defaultSeqRetention = 7 * 24 * time.Hour
	defaultSweep        = time.Hour
)

// Options configure a Store. Only Namespace and Provider are required.
type Options struct {
	Namespace string // isolates sessions, e.g. "studio-a"
	Provider  pr.Provider

	Codec           codec.Codec[netsync.State] // nil => codec.StateProto
	Seq             seqstore.SeqStore          // nil => seqstore.Local owned by the Store
	TTL             time.Duration              // record TTL; 0 => 24h, <0 => no expiry
	CleanupInterval time.Duration              // local seq sweep; 0 => 1h
	SeqRetention    time.Duration              // local seq idle retention; 0 => 7d
	Logger          netsync.Logger             // nil => NopLogger
	Hooks           Hooks                      // nil => NopHooks
}

// Store implements netsync.StateStore.
type Store struct {
	ns       string
	provider pr.Provider
	codec    codec.Codec[netsync.State]
	seq      seqstore.SeqStore
	ownSeq   bool
	ttl      time.Duration
	log      netsync.Logger
	hooks    Hooks
}

var _ netsync.StateStore = (*Store)(nil)

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, errors.New("statestore: provider is required")
	}
	if opts.Namespace == "" {
		return nil, errors.New("statestore: namespace is required")
	}

	s := &Store{
		ns:       opts.Namespace,
		provider: opts.Provider,
		log:      coalesce[netsync.Logger](opts.Logger, netsync.NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
		ttl:      coalesce(opts.TTL, defaultTTL),
	}
	if s.ttl < 0 {
		s.ttl = 0
	}
	if opts.Codec != nil {
		s.codec = opts.Codec
	} else {
		s.codec = codec.StateProto{}
	}
	if opts.Seq != nil {
		s.seq = opts.Seq
	} else {
		s.seq = seqstore.NewLocal(
			coalesce(opts.CleanupInterval, defaultSweep),
			coalesce(opts.SeqRetention, defaultSeqRetention),
		)
		s.ownSeq = true
	}
	return s, nil
}

func (s *Store) key(session string) string {
	return "state:" + s.ns + ":" + session
}

// Publish stamps st with the session's next sequence and writes it. The
// returned sequence is the one the record carries.
func (s *Store) Publish(ctx context.Context, session string, st netsync.State) (uint64, error) {
	k := s.key(session)
	payload, err := s.codec.Encode(st)
	if err != nil {
		return 0, err
	}
	seq, err := s.seq.Next(ctx, k)
	if err != nil {
		s.hooks.SeqError(k, err)
		return 0, err
	}

	rec := envelope.Encode(seq, payload)
	ok, err := s.provider.Set(ctx, k, rec, int64(len(rec)), s.ttl)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.hooks.SetRejected(k)
		s.log.Debug("publish rejected by provider (pressure)", netsync.Fields{"session": session, "seq": seq})
		return 0, ErrRejected
	}
	return seq, nil
}

// Latest returns the current record for session. A record whose sequence is
// behind the counter (a racing or lost publish) is never returned.
func (s *Store) Latest(ctx context.Context, session string) (netsync.State, uint64, bool, error) {
	k := s.key(session)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return netsync.State{}, 0, false, err
	}

	seq, payload, err := envelope.Decode(raw)
	if err != nil {
		s.heal(ctx, k, "corrupt")
		return netsync.State{}, 0, false, nil
	}
	cur, err := s.seq.Current(ctx, k)
	if err != nil {
		// cannot tell stale from current; leave the record alone
		s.hooks.SeqError(k, err)
		s.log.Warn("seq read error", netsync.Fields{"key": k, "err": err})
		return netsync.State{}, 0, false, err
	}
	if seq != cur {
		s.heal(ctx, k, "stale")
		return netsync.State{}, 0, false, nil
	}
	st, err := s.codec.Decode(payload)
	if err != nil {
		s.heal(ctx, k, "value_decode")
		return netsync.State{}, 0, false, nil
	}
	return st, seq, true, nil
}

func (s *Store) heal(ctx context.Context, k, reason string) {
	_ = s.provider.Del(ctx, k)
	s.hooks.SelfHeal(k, reason)
	s.log.Debug("state record dropped", netsync.Fields{"key": k, "reason": reason})
}

// Clear bumps the session sequence and deletes its record. After Clear,
// Latest misses until the next Publish.
func (s *Store) Clear(ctx context.Context, session string) error {
	k := s.key(session)
	_, seqErr := s.seq.Next(ctx, k)
	delErr := s.provider.Del(ctx, k)

	switch {
	case seqErr != nil && delErr != nil:
		s.hooks.SeqError(k, seqErr)
		s.log.Error("clear failed: seq bump and delete failed", netsync.Fields{"session": session, "seq_err": seqErr, "del_err": delErr})
		return &ClearError{Session: session, SeqErr: seqErr, DelErr: delErr}
	case seqErr != nil:
		// record is gone; nothing stale can be served
		s.hooks.SeqError(k, seqErr)
		s.log.Warn("clear: seq bump failed (record deleted)", netsync.Fields{"session": session, "err": seqErr})
		return nil
	case delErr != nil:
		s.log.Warn("clear: delete failed (record now stale)", netsync.Fields{"session": session, "err": delErr})
		return nil
	}
	s.log.Debug("cleared session", netsync.Fields{"session": session})
	return nil
}

// Seq returns the session's current sequence.
func (s *Store) Seq(ctx context.Context, session string) (uint64, error) {
	return s.seq.Current(ctx, s.key(session))
}

// Close closes the sequence store if the Store created it, then the provider.
func (s *Store) Close(ctx context.Context) error {
	if s.ownSeq {
		_ = s.seq.Close(ctx)
	}
	return s.provider.Close(ctx)
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
