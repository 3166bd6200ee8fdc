package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Field names come from `msgpack:"..."` tags; see Record.
type Msgpack[V any] struct{}

var _ Codec[Record] = Msgpack[Record]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
