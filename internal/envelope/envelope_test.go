package envelope

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	payload := []byte(`{"transport":1}`)
	b := Encode(42, payload)

	seq, got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if seq != 42 {
		t.Fatalf("seq = %d, want 42", seq)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestEmptyPayload(t *testing.T) {
	seq, got, err := Decode(Encode(7, nil))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if seq != 7 || len(got) != 0 {
		t.Fatalf("got seq=%d payload=%x", seq, got)
	}
}

func TestDecodeRejectsCorrupt(t *testing.T) {
	good := Encode(1, []byte("abc"))

	badMagic := append([]byte(nil), good...)
	badMagic[0] = 'X'

	badVersion := append([]byte(nil), good...)
	badVersion[4] = 9

	longLen := append([]byte(nil), good...)
	longLen[hdrLen-1] = 0xFF

	trailing := append(append([]byte(nil), good...), 0x00)

	cases := map[string][]byte{
		"nil":        nil,
		"short":      good[:hdrLen-1],
		"bad magic":  badMagic,
		"bad ver":    badVersion,
		"long len":   longLen,
		"truncated":  good[:len(good)-1],
		"trailing":   trailing,
		"len at max": append(good[:hdrLen-4:hdrLen-4], 0xFF, 0xFF, 0xFF, 0xFF),
	}
	for name, b := range cases {
		if _, _, err := Decode(b); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}
