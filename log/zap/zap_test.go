package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/netsync"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("payload rejected", netsync.Fields{"size": 8, "err": errors.New("bad header")})
	l.Warn("sink send failed", nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "netsync" || e.Level != zapcore.DebugLevel || e.Message != "payload rejected" {
		t.Fatalf("entry = %+v", e.Entry)
	}
	ctx := e.ContextMap()
	if ctx["size"] != int64(8) || ctx["err"] != "bad header" {
		t.Fatalf("fields = %v", ctx)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("level = %v", entries[1].Level)
	}
}
