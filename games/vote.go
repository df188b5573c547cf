/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyVoted     = errors.New("already voted")
	ErrLeaderCannotVote = errors.New("the leader does not vote")
	ErrUnknownEntry     = errors.New("no such submission")
	ErrHiddenEntry      = errors.New("submission is still face down")
)

// Ballot is one viewer's vote in a round.
type Ballot struct {
	Leader bool
	Choice string
}

// CanVote reports whether the vote buttons are enabled.
func (b *Ballot) CanVote() bool {
	return !b.Leader && b.Choice == ""
}

// Cast records a vote for submission id among submissions.
func (b *Ballot) Cast(id string, submissions []Submission) error {
	if b.Leader {
		return ErrLeaderCannotVote
	}
	if b.Choice != "" {
		return ErrAlreadyVoted
	}

	for _, s := range submissions {
		if s.ID == id {
			b.Choice = id

			return nil
		}
	}

	return ErrUnknownEntry
}

// VoteLabel renders a vote count the way result cards show it.
func VoteLabel(n int) string {
	if n == 1 {
		return "1 vote"
	}

	return fmt.Sprintf("%d votes", n)
}
