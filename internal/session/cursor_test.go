package session

import (
	"errors"
	"testing"
)

func TestCursor_AdvanceReachesExhaustedOnce(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		c := NewCursor(items)

		signals := 0
		for i := 0; i < n; i++ {
			if c.Advance() {
				signals++
				if i != n-1 {
					t.Errorf("n=%d: wasLast on call %d, want only on call %d", n, i+1, n)
				}
			}
		}
		if signals != 1 {
			t.Errorf("n=%d: wasLast signalled %d times, want 1", n, signals)
		}
		if !c.Exhausted() {
			t.Errorf("n=%d: Exhausted() = false after %d advances", n, n)
		}

		for i := 0; i < 3; i++ {
			if c.Advance() {
				t.Errorf("n=%d: wasLast signalled again after exhaustion", n)
			}
		}
		if c.Index() != n-1 {
			t.Errorf("n=%d: Index() = %d, want saturated at %d", n, c.Index(), n-1)
		}

		c.Reset()
		if c.Exhausted() || c.Index() != 0 {
			t.Errorf("n=%d: Reset() left index=%d exhausted=%v", n, c.Index(), c.Exhausted())
		}
	}
}

func TestCursor_Empty(t *testing.T) {
	c := NewCursor[string](nil)

	if _, err := c.Current(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Current() err = %v, want ErrEmpty", err)
	}
	if c.Advance() {
		t.Error("Advance() on empty cursor = true, want false")
	}
	if got := c.Seek(3); got != 0 {
		t.Errorf("Seek(3) on empty = %d, want 0", got)
	}
	if c.Exhausted() {
		t.Error("empty cursor should never report exhausted")
	}
}

func TestCursor_SeekClamps(t *testing.T) {
	c := NewCursor([]string{"step1", "step2", "step3", "step4"})

	tests := []struct {
		seek int
		want int
	}{
		{-1, 0},
		{-100, 0},
		{0, 0},
		{2, 2},
		{3, 3},
		{4, 3},
		{99, 3},
	}
	for _, tt := range tests {
		if got := c.Seek(tt.seek); got != tt.want {
			t.Errorf("Seek(%d) = %d, want %d", tt.seek, got, tt.want)
		}
		item, err := c.Current()
		if err != nil {
			t.Fatalf("Current() error: %v", err)
		}
		if want := []string{"step1", "step2", "step3", "step4"}[tt.want]; item != want {
			t.Errorf("after Seek(%d) Current() = %q, want %q", tt.seek, item, want)
		}
	}
}

func TestCursor_CopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	c := NewCursor(items)
	items[0] = "z"
	got, _ := c.Current()
	if got != "a" {
		t.Errorf("Current() = %q, want %q", got, "a")
	}
}

func TestCursor_At(t *testing.T) {
	c := NewCursor([]int{10, 20, 30})
	if v, _ := c.At(-5); v != 10 {
		t.Errorf("At(-5) = %d, want 10", v)
	}
	if v, _ := c.At(7); v != 30 {
		t.Errorf("At(7) = %d, want 30", v)
	}
	if c.Index() != 0 {
		t.Error("At must not move the cursor")
	}
}
