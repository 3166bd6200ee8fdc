// Package timecode converts between wall-clock offsets, SMPTE timecode and
// MTC quarter frames. Only 30 fps non-drop frame is supported.
package timecode

import (
	"errors"
	"fmt"
	"time"
)

const (
	FPS = 30

	// RateCode is the MTC rate identifier for 30 fps non-drop, carried in bits
	// 1-2 of quarter frame 7.
	RateCode = 0x03

	usPerSecond = 1_000_000
)

var (
	ErrFrameType  = errors.New("timecode: quarter frame type out of sequence")
	ErrFrameOrder = errors.New("timecode: quarter frame received out of order")
	ErrValue      = errors.New("timecode: value out of range")
	ErrFrameRate  = errors.New("timecode: unsupported frame rate")
)

// Timecode is HH:MM:SS:FF at 30 fps.
type Timecode struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

// FromMicros rounds us to the nearest frame. Hours wrap at 24.
func FromMicros(us uint64) Timecode {
	// round(us * FPS / 1e6) without overflowing for large us
	framenum := FPS*(us/usPerSecond) + (FPS*(us%usPerSecond)+usPerSecond/2)/usPerSecond
	return fromFrameNumber(framenum)
}

// FromDuration is FromMicros for a non-negative duration; negative values map
// to zero.
func FromDuration(d time.Duration) Timecode {
	if d < 0 {
		return Timecode{}
	}
	return FromMicros(uint64(d / time.Microsecond))
}

func fromFrameNumber(n uint64) Timecode {
	secs := n / FPS
	return Timecode{
		Hours:   uint8(secs / 3600 % 24),
		Minutes: uint8(secs / 60 % 60),
		Seconds: uint8(secs % 60),
		Frames:  uint8(n % FPS),
	}
}

// FrameNumber counts frames since 00:00:00:00.
func (tc Timecode) FrameNumber() uint64 {
	return uint64(tc.Hours)*3600*FPS +
		uint64(tc.Minutes)*60*FPS +
		uint64(tc.Seconds)*FPS +
		uint64(tc.Frames)
}

func (tc Timecode) Micros() uint64 {
	return tc.FrameNumber() * usPerSecond / FPS
}

func (tc Timecode) Duration() time.Duration {
	return time.Duration(tc.Micros()) * time.Microsecond
}

// Validate checks SMPTE ranges.
func (tc Timecode) Validate() error {
	if tc.Hours > 23 || tc.Minutes > 59 || tc.Seconds > 59 || tc.Frames >= FPS {
		return fmt.Errorf("%w: %s", ErrValue, tc)
	}
	return nil
}

func (tc Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", tc.Hours, tc.Minutes, tc.Seconds, tc.Frames)
}

// Parse reads HH:MM:SS:FF. Ranges are checked.
func Parse(s string) (Timecode, error) {
	var h, m, sec, f uint8
	var tail string
	n, _ := fmt.Sscanf(s, "%d:%d:%d:%d%s", &h, &m, &sec, &f, &tail)
	if n != 4 {
		return Timecode{}, fmt.Errorf("timecode: parse %q: want HH:MM:SS:FF", s)
	}
	tc := Timecode{Hours: h, Minutes: m, Seconds: sec, Frames: f}
	if err := tc.Validate(); err != nil {
		return Timecode{}, err
	}
	return tc, nil
}
