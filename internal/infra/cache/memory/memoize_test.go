package memcache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestArgsKeyDeterministic(t *testing.T) {
	k1 := ArgsKey("a", 1, map[string]int{"x": 1, "y": 2})
	k2 := ArgsKey("a", 1, map[string]int{"y": 2, "x": 1})
	if k1 != k2 {
		t.Fatal("same args must give same digest regardless of map order")
	}
	if k1 == ArgsKey("a", 2) {
		t.Fatal("different args must give different digests")
	}
}

func TestMemoizedCall(t *testing.T) {
	c := New(10, time.Minute, testLogger())

	calls := 0
	m := NewMemoized(c, "test", time.Minute, func(ctx context.Context, args ...any) (any, error) {
		calls++
		return args[0].(int) * 2, nil
	})

	v, err := m.Call(context.Background(), 21)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int) != 42 {
		t.Fatalf("got %v, want 42", v)
	}

	if _, err := m.Call(context.Background(), 21); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1 (second call cached)", calls)
	}

	// другие аргументы — другой ключ
	if _, err := m.Call(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2", calls)
	}
}

func TestMemoizedErrorNotCached(t *testing.T) {
	c := New(10, time.Minute, testLogger())

	calls := 0
	boom := errors.New("boom")
	m := NewMemoized(c, "", time.Minute, func(ctx context.Context, args ...any) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	})

	if _, err := m.Call(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	v, err := m.Call(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != "ok" {
		t.Fatal("error result must not be cached")
	}
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2", calls)
	}
}

func TestMemoizedInvalidate(t *testing.T) {
	c := New(10, time.Minute, testLogger())

	calls := 0
	m := NewMemoized(c, "inv", time.Minute, func(ctx context.Context, args ...any) (any, error) {
		calls++
		return calls, nil
	})

	_, _ = m.Call(context.Background(), "k")
	if !m.Invalidate("k") {
		t.Fatal("invalidate of cached args should return true")
	}
	_, _ = m.Call(context.Background(), "k")
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2 after invalidation", calls)
	}
}

func TestMemoizedClearWipesWholeCache(t *testing.T) {
	c := New(10, time.Minute, testLogger())
	c.Set("unrelated", 1)

	m := NewMemoized(c, "", time.Minute, func(ctx context.Context, args ...any) (any, error) {
		return 1, nil
	})
	_, _ = m.Call(context.Background())
	m.Clear()

	if s := c.GetStats(); s.Entries != 0 {
		t.Fatalf("clear left %d entries; it wipes the whole cache", s.Entries)
	}
}
