package memcache

import (
	"context"
	"testing"
	"time"
)

func TestSweeperRemovesExpired(t *testing.T) {
	c := New(10, time.Minute, testLogger())
	c.SetTTL("dead", 1, 10*time.Millisecond)
	c.Set("alive", 2)

	s := NewSweeper(c, 30*time.Millisecond, testLogger())
	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)

	if st := c.GetStats(); st.Entries != 1 {
		t.Fatalf("entries=%d, want 1 after sweep", st.Entries)
	}
	if _, ok := c.Get("alive"); !ok {
		t.Fatal("live entry must survive the sweeper")
	}
}

func TestSweeperStopIsIdempotentPerStart(t *testing.T) {
	c := New(10, time.Minute, testLogger())
	s := NewSweeper(c, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Stop() // должен вернуться, не зависнуть
}
