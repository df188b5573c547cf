package games

import (
	"testing"
	"time"
)

func TestRevealedBy(t *testing.T) {
	const d = 500 * time.Millisecond
	const n = 3

	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{-time.Second, 0},
		{0, 0},
		{d - time.Millisecond, 0},
		{d, 1},
		{2*d - time.Millisecond, 1},
		{2 * d, 2},
		{3 * d, 3},
		{10 * d, 3},
	}

	for _, c := range cases {
		if got := RevealedBy(c.elapsed, d, n); got != c.want {
			t.Errorf("RevealedBy(%v) = %d, want %d", c.elapsed, got, c.want)
		}
	}

	if got := RevealedBy(time.Second, 0, n); got != n {
		t.Errorf("zero delay shows %d, want %d", got, n)
	}
}

func TestReveal_InOrder(t *testing.T) {
	subs := (&MockProvider{}).Submissions()
	r := NewReveal(subs)

	if r.Done() || r.Shown() != 0 {
		t.Fatal("nothing should be revealed yet")
	}

	for i, s := range subs {
		more := r.Step()
		if !r.Revealed(s.ID) {
			t.Errorf("card %d (%s) should be revealed", i, s.ID)
		}
		if i+1 < len(subs) && r.Revealed(subs[i+1].ID) {
			t.Errorf("card %d revealed early", i+1)
		}
		if more != (i+1 < len(subs)) {
			t.Errorf("step %d: more %v", i, more)
		}
	}

	if !r.Done() {
		t.Error("every card should be revealed")
	}
	if r.Step() {
		t.Error("stepping past the end should report nothing left")
	}
	if r.Shown() != len(subs) {
		t.Errorf("Shown %d, want %d", r.Shown(), len(subs))
	}
}
