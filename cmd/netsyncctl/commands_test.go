package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/internal/envelope"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	cases := []struct {
		args []string
		hex  string
		text string
	}{
		{[]string{"mtc-quarter-frame", "2", "3"}, "020203", "mtc-quarter-frame{type=2 value=3}"},
		{[]string{"mtc-full-frame", "12:34:56:07"}, "040c223807", "mtc-full-frame{12:34:56:07}"},
		{[]string{"mmc-stop"}, "20", "mmc-stop"},
		{[]string{"mmc-play"}, "30", "mmc-play"},
		{[]string{"mmc-locate", "01:02:03:04"}, "2401020304", "mmc-locate{01:02:03:04}"},
	}
	for _, tc := range cases {
		out, err := run(t, append([]string{"encode"}, tc.args...)...)
		require.NoError(t, err, tc.args)
		assert.Equal(t, tc.hex+"\n", out)

		out, err = run(t, "decode", tc.hex)
		require.NoError(t, err, tc.hex)
		assert.Equal(t, tc.text+"\n", out)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := run(t, "decode", "ff")
	require.Error(t, err)
	assert.Equal(t, netsync.CodeInvalidSlaveEvent, netsync.CodeOf(err))

	_, err = run(t, "decode", "zz")
	require.Error(t, err)

	_, err = run(t, "encode", "mmc-rewind")
	require.Error(t, err)
}

func TestMidiBridge(t *testing.T) {
	out, err := run(t, "from-midi", "F0 7F 7F 06 02 F7")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	out, err = run(t, "to-midi", "--device", "16", "20")
	require.NoError(t, err)
	assert.Equal(t, "f07f100601f7\n", out)

	_, err = run(t, "from-midi", "90 40 7f")
	require.Error(t, err)
	assert.Equal(t, netsync.CodeInvalidMasterEvent, netsync.CodeOf(err))
}

func TestPublishThenResyncOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := writeConfig(t, fmt.Sprintf(`
session = "show-1"
log_level = "error"

[store]
provider = "redis"
namespace = "test"
codec = "msgpack"

[redis]
addr = %q
`, mr.Addr()))

	out, err := run(t, "--config", cfg, "publish", "mmc-locate", "01:02:03:04")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2401020304", lines[0])
	assert.Equal(t, "session=show-1 seq=1 state=stopped @01:02:03:04", lines[1])

	assert.True(t, mr.Exists("state:test:show-1"))

	out, err = run(t, "--config", cfg, "resync")
	require.NoError(t, err)
	assert.Equal(t, "stopped @01:02:03:04\n", out)
}

func TestResyncMissIsAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := writeConfig(t, fmt.Sprintf("session = \"nobody\"\n[store]\nprovider = \"redis\"\n[redis]\naddr = %q\n", mr.Addr()))
	_, err := run(t, "--config", cfg, "resync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no state published")
}

func TestPublishInProcess(t *testing.T) {
	for _, provider := range []string{"ristretto", "bigcache"} {
		cfg := writeConfig(t, "session = \"s\"\n[store]\nprovider = \""+provider+"\"\ncodec = \"json\"\n")
		out, err := run(t, "--config", cfg, "publish", "mmc-play")
		require.NoError(t, err, provider)
		assert.Contains(t, out, "seq=1 state=playing unlocked", provider)
	}
}

func TestResyncDropsOversizedRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := writeConfig(t, fmt.Sprintf(`
session = "s"
[store]
provider = "redis"
namespace = "test"
[redis]
addr = %q
prefix = "rig-2:"
`, mr.Addr()))

	out, err := run(t, "--config", cfg, "publish", "mmc-play")
	require.NoError(t, err)
	assert.Contains(t, out, "seq=1")
	require.True(t, mr.Exists("rig-2:state:test:s"))

	// a current-sequence record whose payload no State codec would produce
	require.NoError(t, mr.Set("rig-2:state:test:s", string(envelope.Encode(1, make([]byte, maxStatePayload+1)))))

	_, err = run(t, "--config", cfg, "resync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no state published")
	assert.False(t, mr.Exists("rig-2:state:test:s"))
}
