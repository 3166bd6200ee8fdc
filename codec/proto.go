package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/unkn0wn-root/netsync"
)

// StateProto encodes netsync.State as a protobuf message without generated
// types:
//
//	message State {
//	  uint32 transport = 1;
//	  bytes  position  = 2; // hh mm ss ff
//	  bool   locked    = 3;
//	}
//
// Unknown fields are skipped. The zero value is ready to use.
type StateProto struct{}

var _ Codec[netsync.State] = StateProto{}

const (
	fieldTransport protowire.Number = 1
	fieldPosition  protowire.Number = 2
	fieldLocked    protowire.Number = 3
)

var errProto = errors.New("codec: malformed state message")

func (StateProto) Encode(s netsync.State) ([]byte, error) {
	r := RecordOf(s)
	b := make([]byte, 0, 12)
	if r.Transport != 0 {
		b = protowire.AppendTag(b, fieldTransport, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.Transport))
	}
	b = protowire.AppendTag(b, fieldPosition, protowire.BytesType)
	b = protowire.AppendBytes(b, r.Position[:])
	if r.Locked {
		b = protowire.AppendTag(b, fieldLocked, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b, nil
}

func (StateProto) Decode(b []byte) (netsync.State, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return netsync.State{}, fmt.Errorf("%w: %v", errProto, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldTransport && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return netsync.State{}, fmt.Errorf("%w: %v", errProto, protowire.ParseError(n))
			}
			if v > 0xFF {
				return netsync.State{}, fmt.Errorf("%w: transport %d", errProto, v)
			}
			r.Transport = uint8(v)
			b = b[n:]
		case num == fieldPosition && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return netsync.State{}, fmt.Errorf("%w: %v", errProto, protowire.ParseError(n))
			}
			if len(v) != len(r.Position) {
				return netsync.State{}, fmt.Errorf("%w: position has %d bytes", errProto, len(v))
			}
			copy(r.Position[:], v)
			b = b[n:]
		case num == fieldLocked && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return netsync.State{}, fmt.Errorf("%w: %v", errProto, protowire.ParseError(n))
			}
			r.Locked = v != 0
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return netsync.State{}, fmt.Errorf("%w: %v", errProto, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return r.State()
}
