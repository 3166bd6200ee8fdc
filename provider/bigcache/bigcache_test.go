package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestBigcacheGetSetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{LifeWindow: time.Minute, Shards: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(ctx) })

	if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("miss expected, ok=%v err=%v", ok, err)
	}
	v := []byte("record")
	if ok, err := p.Set(ctx, "k", v, 0, 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, v) {
		t.Fatalf("Get: %q ok=%v err=%v", got, ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del of missing key: %v", err)
	}
}

func TestBigcacheRequiresLifeWindow(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without LifeWindow")
	}
}
