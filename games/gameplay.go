/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownPhase = errors.New("unknown round phase")
	ErrWrongPhase   = errors.New("not allowed in this phase")
	ErrNotLeader    = errors.New("only the leader can do that")
)

// RoundPhase is what the gameplay view is currently showing.
type RoundPhase string

const (
	PhaseWaiting    RoundPhase = "waiting"
	PhasePrompt     RoundPhase = "prompt"
	PhaseSubmission RoundPhase = "submission"
	PhaseVoting     RoundPhase = "voting"
	PhaseResults    RoundPhase = "results"
)

var RoundPhases = []RoundPhase{PhaseWaiting, PhasePrompt, PhaseSubmission, PhaseVoting, PhaseResults}

// nextPhase is where the leader's advance goes from each phase.
var nextPhase = map[RoundPhase]RoundPhase{
	PhaseWaiting:    PhasePrompt,
	PhasePrompt:     PhaseSubmission,
	PhaseSubmission: PhaseVoting,
	PhaseVoting:     PhaseResults,
	PhaseResults:    PhasePrompt,
}

func ParseRoundPhase(s string) (RoundPhase, error) {
	p := RoundPhase(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := nextPhase[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}

	return p, nil
}

// Next returns the phase the leader's advance leads to.
func (p RoundPhase) Next() RoundPhase {
	return nextPhase[p]
}

// Gameplay is one viewer's round screen. The phase is set from outside,
// either directly or by the leader advancing it.
type Gameplay struct {
	Phase    RoundPhase
	Round    int
	Leader   bool
	ViewerID string

	Prompt         string
	PromptRevealed bool
	Sparkles       bool
	Confetti       bool
	Tab            string

	TimeRemaining int
	MaxTime       int

	Players     []Player
	Submissions []Submission
	Submitted   string

	Gallery *Gallery
	Reveal  *Reveal
	Ballot  Ballot
}

// NewGameplay opens on the submission phase with the mock round loaded.
func NewGameplay(p Provider, viewerID string, leader bool) *Gameplay {
	g := &Gameplay{
		Round:         1,
		Leader:        leader,
		ViewerID:      viewerID,
		Prompt:        p.Prompt(),
		TimeRemaining: 45,
		MaxTime:       60,
		Players:       p.RoundPlayers(),
		Submissions:   p.Submissions(),
		Gallery:       NewGallery(),
		Ballot:        Ballot{Leader: leader},
	}
	g.enter(PhaseSubmission)

	return g
}

// SetLeader switches the viewer's role for the rest of the round.
func (g *Gameplay) SetLeader(leader bool) {
	g.Leader = leader
	g.Ballot.Leader = leader
}

// SetPhase jumps straight to phase. It reports whether anything changed.
func (g *Gameplay) SetPhase(phase RoundPhase) (bool, error) {
	if _, ok := nextPhase[phase]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	if phase == g.Phase {
		return false, nil
	}

	g.enter(phase)

	return true, nil
}

// Advance is the leader's skip / continue / next round control.
func (g *Gameplay) Advance(p Provider) error {
	if !g.Leader {
		return ErrNotLeader
	}

	next := g.Phase.Next()
	if g.Phase == PhaseResults {
		g.newRound(p)
	}

	g.enter(next)

	return nil
}

// EndGame sends everyone back to waiting.
func (g *Gameplay) EndGame() error {
	if !g.Leader {
		return ErrNotLeader
	}
	if g.Phase != PhaseResults {
		return ErrWrongPhase
	}

	g.enter(PhaseWaiting)

	return nil
}

func (g *Gameplay) newRound(p Provider) {
	g.Round++
	g.Prompt = p.Prompt()
	g.Submissions = p.Submissions()
	g.Players = p.RoundPlayers()
	g.Submitted = ""
	g.Gallery = NewGallery()
	g.Ballot = Ballot{Leader: g.Leader}
}

func (g *Gameplay) enter(phase RoundPhase) {
	g.Phase = phase
	g.Sparkles = false
	g.Confetti = false

	switch phase {
	case PhasePrompt:
		g.PromptRevealed = false
	case PhaseSubmission:
		g.PromptRevealed = true
	case PhaseVoting:
		g.PromptRevealed = true
		g.Reveal = NewReveal(g.Submissions)
	case PhaseResults:
		g.Reveal = NewReveal(g.Submissions)
		g.Confetti = true
		g.Tab = "round"
	}
}

// RevealPrompt finishes the delayed prompt reveal.
func (g *Gameplay) RevealPrompt() bool {
	if g.Phase != PhasePrompt || g.PromptRevealed {
		return false
	}

	g.PromptRevealed = true
	g.Sparkles = true

	return true
}

// PromptWords splits the prompt for the word-by-word reveal.
func (g *Gameplay) PromptWords() []string {
	return strings.Fields(g.Prompt)
}

// SetTab picks between the round results and the game standings.
func (g *Gameplay) SetTab(tab string) {
	switch tab {
	case "round", "game":
		g.Tab = tab
	}
}

// SubmitImage hands in the gallery selection as the viewer's reaction.
func (g *Gameplay) SubmitImage() (Submission, error) {
	if g.Phase != PhaseSubmission {
		return Submission{}, ErrWrongPhase
	}
	if g.Leader {
		return Submission{}, ErrNotLeader
	}

	img, ok := g.Gallery.Selection()
	if !ok {
		return Submission{}, ErrNothingSelected
	}

	g.Submitted = img.URL
	g.markViewer(func(p *Player) { p.HasSubmitted = true })

	for i := range g.Submissions {
		if g.Submissions[i].PlayerID == g.ViewerID {
			g.Submissions[i].ImageURL = img.URL

			return g.Submissions[i], nil
		}
	}

	s := Submission{
		ID:           uuid.NewString(),
		PlayerID:     g.ViewerID,
		PlayerName:   "You",
		PlayerAvatar: Avatar(g.ViewerID),
		ImageURL:     img.URL,
	}
	g.Submissions = append(g.Submissions, s)

	return s, nil
}

// Vote casts the viewer's single vote. Only face-up cards can be voted for.
func (g *Gameplay) Vote(id string) error {
	if g.Phase != PhaseVoting {
		return ErrWrongPhase
	}

	if g.Reveal != nil && g.Ballot.CanVote() && !g.Reveal.Revealed(id) {
		for _, s := range g.Submissions {
			if s.ID == id {
				return ErrHiddenEntry
			}
		}
	}

	if err := g.Ballot.Cast(id, g.Submissions); err != nil {
		return err
	}

	g.markViewer(func(p *Player) { p.HasVoted = true })

	return nil
}

func (g *Gameplay) markViewer(fn func(*Player)) {
	for i := range g.Players {
		if g.Players[i].ID == g.ViewerID {
			fn(&g.Players[i])
		}
	}
}

// Progress is a done/total count with its rounded percentage.
type Progress struct {
	Done    int
	Total   int
	Percent int
}

func progress(players []Player, done func(Player) bool) Progress {
	p := Progress{Total: len(players)}
	for _, pl := range players {
		if done(pl) {
			p.Done++
		}
	}

	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Done) * 100 / float64(p.Total)))
	}

	return p
}

func (g *Gameplay) SubmissionProgress() Progress {
	return progress(g.Players, func(p Player) bool { return p.HasSubmitted })
}

func (g *Gameplay) VotingProgress() Progress {
	return progress(g.Players, func(p Player) bool { return p.HasVoted })
}

// ProgressText is the caption above the progress bar.
func (g *Gameplay) ProgressText() string {
	switch g.Phase {
	case PhaseSubmission:
		p := g.SubmissionProgress()

		return fmt.Sprintf("Submissions: %d/%d", p.Done, p.Total)
	case PhaseVoting:
		p := g.VotingProgress()

		return fmt.Sprintf("Votes: %d/%d", p.Done, p.Total)
	default:
		return "Game in progress"
	}
}

// Winner returns the player id behind the winning submission, if any.
func (g *Gameplay) Winner() string {
	for _, s := range g.Submissions {
		if s.IsWinner {
			return s.PlayerID
		}
	}

	return ""
}

// Standings ranks the round's players for the results board.
func (g *Gameplay) Standings() []Standing {
	return Rank(g.Players, g.Winner())
}
