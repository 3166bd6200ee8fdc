package statestore

// Hooks lightweight callbacks for store events.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// A record was deleted on read.
	// reason ∈ {"corrupt", "stale", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	SetRejected(storageKey string)

	// SeqStore Current or Next failed.
	SeqError(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string) {}
func (NopHooks) SetRejected(string)      {}
func (NopHooks) SeqError(string, error)  {}
