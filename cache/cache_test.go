package cache

import (
	"errors"
	"testing"
)

func TestKeyStableAcrossMapOrder(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 2, "x": 1}
	ka, err := Key(a)
	if err != nil {
		t.Fatal(err)
	}
	kb, err := Key(b)
	if err != nil {
		t.Fatal(err)
	}
	if ka != kb {
		t.Errorf("expected equal keys for deep-equal maps, got %q vs %q", ka, kb)
	}
}

func TestCacheGetBuildsOnceAndReuses(t *testing.T) {
	c := New[int]()
	calls := 0
	build := func() (int, error) {
		calls++
		return 42, nil
	}
	v1, err := c.Get("k", build)
	if err != nil || v1 != 42 {
		t.Fatalf("first Get: %v, %v", v1, err)
	}
	v2, err := c.Get("k", build)
	if err != nil || v2 != 42 {
		t.Fatalf("second Get: %v, %v", v2, err)
	}
	if calls != 1 {
		t.Errorf("expected build to run exactly once, ran %d times", calls)
	}
	if c.Size() != 1 {
		t.Errorf("expected cache size 1, got %d", c.Size())
	}
}

func TestCacheGetPropagatesBuildError(t *testing.T) {
	c := New[int]()
	wantErr := errors.New("boom")
	_, err := c.Get("k", func() (int, error) { return 0, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("expected build error to propagate, got %v", err)
	}
	if c.Size() != 0 {
		t.Error("a failed build must not be cached")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int]()
	_, _ = c.Get("k", func() (int, error) { return 1, nil })
	c.Clear()
	if c.Size() != 0 {
		t.Error("expected cache to be empty after Clear")
	}
}
