package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1
	hdrLen       = 4 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("envelope: corrupt state record")
	magic4     = [...]byte{'N', 'S', 'S', 'T'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames a state payload with the session sequence it was written under.
//
//	magic(4) | ver(1) | seq(u64 be) | plen(u32 be) | payload(plen)
func Encode(seq uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], seq)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode returns the sequence and payload of a record produced by Encode.
// The payload aliases b.
func Decode(b []byte) (seq uint64, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}

	off := 5
	seq = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if plen < 0 || plen > len(b)-off { // overflow-safe bound check
		return 0, nil, ErrCorrupt
	}
	if off+plen != len(b) {
		return 0, nil, ErrCorrupt
	}
	return seq, b[off : off+plen], nil
}
