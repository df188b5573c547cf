/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "time"

// RevealedBy returns how many of n cards revealed one per delay are visible
// once elapsed has passed since the reveal began.
func RevealedBy(elapsed, delay time.Duration, n int) int {
	if elapsed < 0 || n <= 0 {
		return 0
	}
	if delay <= 0 {
		return n
	}

	k := int(elapsed / delay)
	if k > n {
		return n
	}

	return k
}

// Reveal turns submission cards face up one at a time, in order.
type Reveal struct {
	ids   []string
	shown int
}

func NewReveal(submissions []Submission) *Reveal {
	ids := make([]string, 0, len(submissions))
	for _, s := range submissions {
		ids = append(ids, s.ID)
	}

	return &Reveal{ids: ids}
}

// Step reveals the next card. It reports whether any cards remain hidden.
func (r *Reveal) Step() bool {
	if r.shown < len(r.ids) {
		r.shown++
	}

	return r.shown < len(r.ids)
}

// Done reports whether every card is face up.
func (r *Reveal) Done() bool { return r.shown >= len(r.ids) }

func (r *Reveal) Shown() int { return r.shown }

func (r *Reveal) Revealed(id string) bool {
	for _, v := range r.ids[:r.shown] {
		if v == id {
			return true
		}
	}

	return false
}
