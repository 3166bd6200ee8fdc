package timecode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMicros(t *testing.T) {
	cases := []struct {
		us   uint64
		want Timecode
	}{
		{0, Timecode{}},
		{1_000_000, Timecode{Seconds: 1}},
		{60_000_000, Timecode{Minutes: 1}},
		{3_600_000_000, Timecode{Hours: 1}},
		{1_000_000 / 30, Timecode{Frames: 1}},
		{(2*3600+30*60+45)*1_000_000 + 15*1_000_000/30, Timecode{2, 30, 45, 15}},
		{24 * 3_600_000_000, Timecode{}},
		{25*3_600_000_000 + 1_000_000, Timecode{Hours: 1, Seconds: 1}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FromMicros(tc.us), "us=%d", tc.us)
	}
}

func TestFromMicrosRoundsToNearestFrame(t *testing.T) {
	// 16_666us is just under half a frame, 16_667us just over.
	assert.Equal(t, Timecode{}, FromMicros(16_666))
	assert.Equal(t, Timecode{Frames: 1}, FromMicros(16_667))
	assert.Equal(t, Timecode{Seconds: 1}, FromMicros(999_999))
}

func TestFromMicrosHugeInputDoesNotOverflow(t *testing.T) {
	tc := FromMicros(^uint64(0))
	require.NoError(t, tc.Validate())
}

func TestMicrosInverse(t *testing.T) {
	assert.Equal(t, uint64(0), Timecode{}.Micros())
	assert.Equal(t, uint64(1_000_000), Timecode{Seconds: 1}.Micros())
	assert.Equal(t, uint64(60_000_000), Timecode{Minutes: 1}.Micros())
	assert.Equal(t, uint64(3_600_000_000), Timecode{Hours: 1}.Micros())
	assert.Equal(t, uint64(33_333), Timecode{Frames: 1}.Micros())

	for _, tc := range []Timecode{{0, 0, 0, 0}, {1, 2, 3, 4}, {23, 59, 59, 29}, {12, 0, 30, 15}} {
		assert.Equal(t, tc, FromMicros(tc.Micros()), "round trip %s", tc)
	}
}

func TestDuration(t *testing.T) {
	tc := Timecode{Hours: 1, Minutes: 2, Seconds: 3}
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, tc.Duration())
	assert.Equal(t, tc, FromDuration(tc.Duration()))
	assert.Equal(t, Timecode{}, FromDuration(-time.Second))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Timecode{23, 59, 59, 29}.Validate())
	for _, bad := range []Timecode{{Hours: 24}, {Minutes: 60}, {Seconds: 60}, {Frames: 30}} {
		require.ErrorIs(t, bad.Validate(), ErrValue, "%+v", bad)
	}
}

func TestStringAndParse(t *testing.T) {
	tc := Timecode{1, 30, 45, 15}
	assert.Equal(t, "01:30:45:15", tc.String())

	got, err := Parse("01:30:45:15")
	require.NoError(t, err)
	assert.Equal(t, tc, got)

	for _, bad := range []string{"", "01:30:45", "01:30:45:15x", "24:00:00:00", "aa:bb:cc:dd"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}
