package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/timecode"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{DroppedEvery: 3})
	for i := 0; i < 9; i++ {
		h.QuarterFrameDropped("order")
	}
	if n := strings.Count(buf.String(), "netsync.quarter_frame_dropped"); n != 3 {
		t.Fatalf("logged %d times, want 3", n)
	}
}

func TestRedactsStoreKeys(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{})
	h.SelfHeal("state:studio:secret-session", "stale")
	h.SeqError("state:studio:secret-session", errors.New("down"))
	out := buf.String()
	if strings.Contains(out, "secret-session") {
		t.Fatalf("key not redacted: %q", out)
	}

	buf.Reset()
	h = New(newLogger(&buf), Options{Redact: func(string) string { return "R" }})
	h.SetRejected("state:studio:x")
	if !strings.Contains(buf.String(), "key=R") {
		t.Fatalf("custom redactor not used: %q", buf.String())
	}
}

func TestPayloadAndTransport(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{LogLocate: true})
	h.PayloadRejected(netsync.CodeInvalidSlaveEvent, 8)
	h.TransportChanged(netsync.Stopped, netsync.Playing)
	h.Located(timecode.Timecode{Hours: 1})
	h.StoreError("publish", errors.New("timeout"))

	out := buf.String()
	for _, want := range []string{"code=2 ", "size=8", "from=stopped to=playing", "position=01:00:00:00", "op=publish"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	h := New(nil, Options{})
	h.PayloadRejected(netsync.CodeInvalidSlaveEvent, 1)
	h.StoreError("latest", errors.New("x"))
	h.SelfHeal("k", "corrupt")
}
