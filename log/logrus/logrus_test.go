package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/unkn0wn-root/netsync"
)

func TestLogrusLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	boom := errors.New("redis down")
	l.Warn("state publish failed", netsync.Fields{"session": "s1", "err": boom})
	l.Debug("state resync miss", nil)

	if len(hook.Entries) != 2 {
		t.Fatalf("got %d entries", len(hook.Entries))
	}
	e := hook.Entries[0]
	if e.Level != logrus.WarnLevel || e.Message != "state publish failed" {
		t.Fatalf("entry = %v %q", e.Level, e.Message)
	}
	if e.Data["component"] != "netsync" || e.Data["session"] != "s1" || e.Data[logrus.ErrorKey] != boom {
		t.Fatalf("data = %v", e.Data)
	}
	if hook.LastEntry().Level != logrus.DebugLevel {
		t.Fatalf("last level = %v", hook.LastEntry().Level)
	}
}
