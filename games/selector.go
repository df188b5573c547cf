/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"math"
)

// SwipeThreshold is the |offset| * velocity magnitude a drag must pass.
const SwipeThreshold = 1000

var ErrNothingSelected = errors.New("no image selected")

// Selector is the card-swiping image picker. Navigation is bounded at both
// ends and never wraps.
type Selector struct {
	Loading   bool
	Index     int
	Direction int
	Selected  string
	Submitted string

	images []Image
}

func NewSelector() *Selector {
	return &Selector{Loading: true}
}

func (s *Selector) Load(images []Image) {
	s.images = append([]Image(nil), images...)
	s.Loading = false
	s.Index = 0
	s.Direction = 0
}

func (s *Selector) Len() int { return len(s.images) }

// Current returns the card on top, if the catalog is non-empty.
func (s *Selector) Current() (Image, bool) {
	if s.Index < 0 || s.Index >= len(s.images) {
		return Image{}, false
	}

	return s.images[s.Index], true
}

// Next moves one card forward. It reports whether the index changed.
func (s *Selector) Next() bool {
	if s.Index >= len(s.images)-1 {
		return false
	}

	s.Direction = 1
	s.Index++

	return true
}

// Prev moves one card back. It reports whether the index changed.
func (s *Selector) Prev() bool {
	if s.Index <= 0 {
		return false
	}

	s.Direction = -1
	s.Index--

	return true
}

// Drag applies the end of a horizontal drag. A leftward swipe strong
// enough advances, a rightward one goes back.
func (s *Selector) Drag(offsetX, velocityX float64) bool {
	swipe := math.Abs(offsetX) * velocityX

	switch {
	case swipe < -SwipeThreshold:
		return s.Next()
	case swipe > SwipeThreshold:
		return s.Prev()
	}

	return false
}

// Select marks the current card.
func (s *Selector) Select() (Image, bool) {
	img, ok := s.Current()
	if !ok {
		return Image{}, false
	}

	s.Selected = img.URL

	return img, true
}

// Submit hands in the selected image URL.
func (s *Selector) Submit() (string, error) {
	if s.Selected == "" {
		return "", ErrNothingSelected
	}

	s.Submitted = s.Selected

	return s.Submitted, nil
}
