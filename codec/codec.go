// Package codec serializes values for the state store. Every Codec[V] turns a
// V into bytes and back; the store frames those bytes with a sequence number
// and never inspects them.
package codec

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/netsync"
)

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Names accepted by ForState.
const (
	NameJSON    = "json"
	NameCBOR    = "cbor"
	NameMsgpack = "msgpack"
	NameProto   = "proto"
)

// ForState returns the state codec registered under name. An empty name
// selects proto.
func ForState(name string) (Codec[netsync.State], error) {
	switch strings.ToLower(name) {
	case "", NameProto:
		return StateProto{}, nil
	case NameJSON:
		return States{Inner: JSON[Record]{}}, nil
	case NameCBOR:
		c, err := NewCBOR[Record](true)
		if err != nil {
			return nil, err
		}
		return States{Inner: c}, nil
	case NameMsgpack:
		return States{Inner: Msgpack[Record]{}}, nil
	default:
		return nil, fmt.Errorf("codec: unknown state codec %q", name)
	}
}
