package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR is a Codec that serializes values using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// so the same state always produces the same record bytes.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[Record] = CBOR[Record]{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions.
//
// Decoding rejects duplicate map keys and caps nesting, since records may
// come from a shared store.
func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: 16,
	}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}
