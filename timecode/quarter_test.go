package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterFramesLayout(t *testing.T) {
	qf := Timecode{Hours: 17, Minutes: 42, Seconds: 33, Frames: 29}.QuarterFrames()

	want := [8]QuarterFrame{
		{0, 29 & 0x0F}, {1, 1},
		{2, 33 & 0x0F}, {3, 2},
		{4, 42 & 0x0F}, {5, 2},
		{6, 17 & 0x0F}, {7, 1 | 0x06},
	}
	assert.Equal(t, want, qf)
}

func TestQuarterFramesRoundTrip(t *testing.T) {
	for h := uint8(0); h < 24; h += 5 {
		for m := uint8(0); m < 60; m += 7 {
			for f := uint8(0); f < FPS; f += 3 {
				tc := Timecode{Hours: h, Minutes: m, Seconds: (m + f) % 60, Frames: f}
				got, err := FromQuarterFrames(tc.QuarterFrames())
				require.NoError(t, err, tc.String())
				require.Equal(t, tc, got)
			}
		}
	}
}

func TestFromQuarterFramesRejects(t *testing.T) {
	base := Timecode{1, 2, 3, 4}.QuarterFrames()

	swapped := base
	swapped[2], swapped[3] = swapped[3], swapped[2]
	_, err := FromQuarterFrames(swapped)
	require.ErrorIs(t, err, ErrFrameType)

	wide := base
	wide[4].Value = 16
	_, err = FromQuarterFrames(wide)
	require.ErrorIs(t, err, ErrValue)

	frames30 := base
	frames30[0].Value, frames30[1].Value = 14, 1 // 30
	_, err = FromQuarterFrames(frames30)
	require.ErrorIs(t, err, ErrValue)

	hours24 := base
	hours24[6].Value, hours24[7].Value = 8, 1|RateCode<<1 // 24
	_, err = FromQuarterFrames(hours24)
	require.ErrorIs(t, err, ErrValue)

	rate25 := base
	rate25[7].Value = 0x01 << 1
	_, err = FromQuarterFrames(rate25)
	require.ErrorIs(t, err, ErrFrameRate)
}

func TestDataByte(t *testing.T) {
	q := QuarterFrame{Type: 7, Value: 0x0B}
	assert.Equal(t, byte(0x7B), q.DataByte())

	got, err := QuarterFrameFromByte(0x7B)
	require.NoError(t, err)
	assert.Equal(t, q, got)

	_, err = QuarterFrameFromByte(0x80)
	require.ErrorIs(t, err, ErrValue)
}

func TestAssembler(t *testing.T) {
	var a Assembler
	tc := Timecode{10, 20, 30, 25}
	frames := tc.QuarterFrames()

	for i, q := range frames[:7] {
		_, ok, err := a.Push(q)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, i+1, a.Pending())
	}
	got, ok, err := a.Push(frames[7])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tc, got)
	assert.Equal(t, 0, a.Pending())
}

func TestAssemblerOutOfOrderResets(t *testing.T) {
	var a Assembler
	frames := Timecode{1, 1, 1, 1}.QuarterFrames()

	_, _, err := a.Push(frames[0])
	require.NoError(t, err)
	_, _, err = a.Push(frames[2])
	require.ErrorIs(t, err, ErrFrameOrder)
	assert.Equal(t, 0, a.Pending())

	// Mid-sequence frames without a frame 0 are rejected too.
	_, _, err = a.Push(frames[1])
	require.ErrorIs(t, err, ErrFrameOrder)

	_, _, err = a.Push(QuarterFrame{Type: 9})
	require.ErrorIs(t, err, ErrFrameType)
}

func TestAssemblerFrameZeroRestarts(t *testing.T) {
	var a Assembler
	first := Timecode{2, 2, 2, 2}.QuarterFrames()
	second := Timecode{3, 3, 3, 3}.QuarterFrames()

	for _, q := range first[:5] {
		_, _, err := a.Push(q)
		require.NoError(t, err)
	}
	var (
		got Timecode
		ok  bool
		err error
	)
	for _, q := range second {
		got, ok, err = a.Push(q)
		require.NoError(t, err)
	}
	require.True(t, ok)
	assert.Equal(t, Timecode{3, 3, 3, 3}, got)
}
