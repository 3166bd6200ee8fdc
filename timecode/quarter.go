package timecode

import "fmt"

// QuarterFrame is one MTC quarter frame: Type 0-7 selects the nibble,
// Value carries 4 bits.
type QuarterFrame struct {
	Type  uint8
	Value uint8
}

// DataByte packs the frame into the single data byte of an F1 message.
func (q QuarterFrame) DataByte() byte {
	return (q.Type&0x07)<<4 | q.Value&0x0F
}

// QuarterFrameFromByte splits an F1 data byte. The high bit must be clear.
func QuarterFrameFromByte(b byte) (QuarterFrame, error) {
	if b&0x80 != 0 {
		return QuarterFrame{}, fmt.Errorf("%w: data byte %#02x", ErrValue, b)
	}
	return QuarterFrame{Type: b >> 4, Value: b & 0x0F}, nil
}

func (q QuarterFrame) String() string {
	return fmt.Sprintf("qf%d=%x", q.Type, q.Value)
}

// QuarterFrames splits tc into the eight frames sent over two timecode frames.
//
//	0 frames lo   1 frames hi (1 bit)
//	2 seconds lo  3 seconds hi (2 bits)
//	4 minutes lo  5 minutes hi (2 bits)
//	6 hours lo    7 hours hi (1 bit) | rate<<1
func (tc Timecode) QuarterFrames() [8]QuarterFrame {
	return [8]QuarterFrame{
		{0, tc.Frames & 0x0F},
		{1, (tc.Frames >> 4) & 0x01},
		{2, tc.Seconds & 0x0F},
		{3, (tc.Seconds >> 4) & 0x03},
		{4, tc.Minutes & 0x0F},
		{5, (tc.Minutes >> 4) & 0x03},
		{6, tc.Hours & 0x0F},
		{7, (tc.Hours>>4)&0x01 | RateCode<<1},
	}
}

// FromQuarterFrames reassembles a timecode from frames 0..7 in order.
func FromQuarterFrames(qf [8]QuarterFrame) (Timecode, error) {
	for i, q := range qf {
		if q.Type != uint8(i) {
			return Timecode{}, fmt.Errorf("%w: position %d has type %d", ErrFrameType, i, q.Type)
		}
		if q.Value > 0x0F {
			return Timecode{}, fmt.Errorf("%w: quarter frame %d value %d", ErrValue, i, q.Value)
		}
	}

	tc := Timecode{
		Frames:  qf[0].Value | (qf[1].Value&0x01)<<4,
		Seconds: qf[2].Value | (qf[3].Value&0x03)<<4,
		Minutes: qf[4].Value | (qf[5].Value&0x03)<<4,
		Hours:   qf[6].Value | (qf[7].Value&0x01)<<4,
	}
	if err := tc.Validate(); err != nil {
		return Timecode{}, err
	}
	if rate := (qf[7].Value >> 1) & 0x03; rate != RateCode {
		return Timecode{}, fmt.Errorf("%w: rate code %d", ErrFrameRate, rate)
	}
	return tc, nil
}

// Assembler collects quarter frames arriving in order 0..7 and yields a
// timecode after frame 7. A frame 0 always starts a new sequence; any other
// frame out of order drops the partial sequence.
//
// Assembler is not safe for concurrent use.
type Assembler struct {
	frames [8]QuarterFrame
	next   uint8
}

// Push adds q. ok reports a completed timecode. On error the assembler has
// been reset.
func (a *Assembler) Push(q QuarterFrame) (tc Timecode, ok bool, err error) {
	if q.Type > 7 {
		a.Reset()
		return Timecode{}, false, fmt.Errorf("%w: type %d", ErrFrameType, q.Type)
	}
	if q.Type == 0 {
		a.next = 0
	}
	if q.Type != a.next {
		want := a.next
		a.Reset()
		return Timecode{}, false, fmt.Errorf("%w: got %d, want %d", ErrFrameOrder, q.Type, want)
	}

	a.frames[q.Type] = q
	a.next++
	if a.next < 8 {
		return Timecode{}, false, nil
	}

	a.Reset()
	tc, err = FromQuarterFrames(a.frames)
	if err != nil {
		return Timecode{}, false, err
	}
	return tc, true, nil
}

// Pending is the number of frames held toward the next timecode.
func (a *Assembler) Pending() int { return int(a.next) }

func (a *Assembler) Reset() { a.next = 0 }
