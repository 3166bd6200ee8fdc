package wire

import "errors"

// Command-list header (RFC 6295 section 3 bit positions):
//
//	byte0: B(1) | J(1) | Z(1) | P(1) | len(4)
//	byte1: lenLow(8)            present only when B is set; length = len<<8 | lenLow
//
// length counts body bytes only.
const (
	FlagExtended byte = 0x8 // B
	FlagJournal  byte = 0x4 // J, no recovery journal support
	FlagMMC      byte = 0x2 // Z slot, MMC command category
	FlagVariant  byte = 0x1 // P slot, Play rather than Stop

	MaxShortLen    = 0x0F
	MaxExtendedLen = 0x0FFF
	MaxHeaderSize  = 2
)

var (
	ErrTruncated    = errors.New("wire: truncated header")
	ErrReserved     = errors.New("wire: reserved header flag set")
	ErrNonCanonical = errors.New("wire: extended length used for short payload")
	ErrLength       = errors.New("wire: declared length exceeds payload")
	ErrFlags        = errors.New("wire: flags do not fit in 4 bits")
	ErrShortBuffer  = errors.New("wire: header does not fit destination")
)

// Header is the parsed command-list header.
type Header struct {
	Flags byte   // low 4 bits only
	Len   uint16 // body length
}

// NewHeader builds a header for an n-byte body, setting FlagExtended only when
// n does not fit the 4-bit length field.
func NewHeader(flags byte, n int) (Header, error) {
	flags &^= FlagExtended
	if n > MaxShortLen {
		flags |= FlagExtended
	}
	h := Header{Flags: flags}
	if n < 0 || n > MaxExtendedLen {
		return Header{}, ErrLength
	}
	h.Len = uint16(n)
	return h, h.Validate()
}

func (h Header) Extended() bool { return h.Flags&FlagExtended != 0 }

// Size is the encoded header size in bytes (1 or 2).
func (h Header) Size() int {
	if h.Extended() {
		return 2
	}
	return 1
}

// Validate reports whether h has exactly one wire representation.
func (h Header) Validate() error {
	if h.Flags > 0x0F {
		return ErrFlags
	}
	if h.Flags&FlagJournal != 0 {
		return ErrReserved
	}
	if h.Extended() {
		if h.Len <= MaxShortLen {
			return ErrNonCanonical
		}
		if h.Len > MaxExtendedLen {
			return ErrLength
		}
		return nil
	}
	if h.Len > MaxShortLen {
		return ErrLength
	}
	return nil
}

// Put writes h to the start of dst and returns the number of bytes written.
// Nothing is written on error.
func (h Header) Put(dst []byte) (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	n := h.Size()
	if len(dst) < n {
		return 0, ErrShortBuffer
	}
	if n == 1 {
		dst[0] = h.Flags<<4 | byte(h.Len)
		return 1, nil
	}
	dst[0] = h.Flags<<4 | byte(h.Len>>8)
	dst[1] = byte(h.Len)
	return 2, nil
}

// Append appends the encoded header to b.
func (h Header) Append(b []byte) ([]byte, error) {
	var buf [MaxHeaderSize]byte
	n, err := h.Put(buf[:])
	if err != nil {
		return b, err
	}
	return append(b, buf[:n]...), nil
}

// ParseHeader reads the header at the start of b and returns it with its
// encoded size. The declared body must fit in the remaining bytes.
func ParseHeader(b []byte) (Header, int, error) {
	if len(b) < 1 {
		return Header{}, 0, ErrTruncated
	}
	flags := b[0] >> 4
	n := int(b[0] & 0x0F)
	size := 1

	if flags&FlagJournal != 0 {
		return Header{}, 0, ErrReserved
	}
	if flags&FlagExtended != 0 {
		if len(b) < 2 {
			return Header{}, 0, ErrTruncated
		}
		n = n<<8 | int(b[1])
		size = 2
		if n <= MaxShortLen {
			return Header{}, 0, ErrNonCanonical
		}
	}
	if n > len(b)-size { // overflow-safe bound check
		return Header{}, 0, ErrLength
	}
	return Header{Flags: flags, Len: uint16(n)}, size, nil
}
