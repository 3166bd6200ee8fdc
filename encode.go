package netsync

import "github.com/unkn0wn-root/netsync/internal/wire"

// MaxPayloadSize bounds any payload Encode produces: the widest header plus a
// full event body, with headroom.
const MaxPayloadSize = 16

// kindFlags is the header flag nibble for each kind. Quarter and full frames
// share 0000 and are told apart by body length; stop and locate share Z.
func kindFlags(k Kind) byte {
	switch k {
	case KindMmcStop, KindMmcLocate:
		return wire.FlagMMC
	case KindMmcPlay:
		return wire.FlagMMC | wire.FlagVariant
	default:
		return 0
	}
}

// EncodedLen is the number of bytes Encode writes for e.
func EncodedLen(e *Event) (int, error) {
	if e == nil {
		return 0, newError(CodeNullReference, "encode", nil)
	}
	if !e.Valid() {
		return 0, newError(CodeInvalidEventType, "encode", nil)
	}
	h, err := wire.NewHeader(kindFlags(e.Kind), int(e.BodyLen))
	if err != nil {
		return 0, newError(CodeInvalidEventType, "encode", err)
	}
	return h.Size() + int(e.BodyLen), nil
}

// Encode writes the payload for e into dst and returns the byte count.
// On error nothing is written and 0 is returned.
func Encode(e *Event, dst []byte) (int, error) {
	if e == nil || dst == nil {
		return 0, newError(CodeNullReference, "encode", nil)
	}
	if !e.Valid() {
		return 0, newError(CodeInvalidEventType, "encode", nil)
	}
	h, err := wire.NewHeader(kindFlags(e.Kind), int(e.BodyLen))
	if err != nil {
		return 0, newError(CodeInvalidEventType, "encode", err)
	}
	body := e.Bytes()
	total := h.Size() + len(body)
	if total > len(dst) {
		return 0, newError(CodeBufferTooSmall, "encode", nil)
	}
	n, err := h.Put(dst)
	if err != nil {
		return 0, newError(CodeBufferTooSmall, "encode", err)
	}
	copy(dst[n:], body)
	return total, nil
}

// Marshal is Encode into a freshly allocated slice.
func Marshal(e Event) ([]byte, error) {
	var buf [MaxPayloadSize]byte
	n, err := Encode(&e, buf[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}
