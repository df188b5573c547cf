/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"strings"
)

var (
	ErrMissingCode = errors.New("Please enter an invite code")
	ErrInvalidCode = errors.New("Invalid invite code. Please check and try again.")
	ErrSubmitting  = errors.New("join already in progress")
)

// JoinForm is the state behind the join dialog. Submitting is split in two
// so the caller can put a simulated lookup delay between Submit and Resolve.
type JoinForm struct {
	Input      string
	Err        error
	Submitting bool
}

// SetInput stores text uppercased and cut to CodeLength, and clears any error.
func (f *JoinForm) SetInput(text string) {
	if f.Submitting {
		return
	}

	text = strings.ToUpper(text)
	if r := []rune(text); len(r) > CodeLength {
		text = string(r[:CodeLength])
	}

	f.Input = text
	f.Err = nil
}

// Submit starts validation. An empty code fails immediately; otherwise the
// form is marked as submitting and the caller must call Resolve later.
func (f *JoinForm) Submit() error {
	if f.Submitting {
		return ErrSubmitting
	}

	f.Err = nil

	if strings.TrimSpace(f.Input) == "" {
		f.Err = ErrMissingCode

		return f.Err
	}

	f.Submitting = true

	return nil
}

// Resolve finishes a pending submission. The only rule is the length:
// exactly CodeLength characters is accepted.
func (f *JoinForm) Resolve() (string, error) {
	f.Submitting = false

	if len([]rune(f.Input)) != CodeLength {
		f.Err = ErrInvalidCode

		return "", f.Err
	}

	f.Err = nil

	return f.Input, nil
}

// Cancel abandons a pending submission without reporting anything.
func (f *JoinForm) Cancel() {
	f.Submitting = false
}
