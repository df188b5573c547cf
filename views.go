/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"html/template"

	"github.com/Seednode/memebattle/games"
)

const (
	pageHome  = "home"
	pagePlay  = "play"
	pageSwipe = "swipe"
)

func validPage(page string) bool {
	switch page {
	case pageHome, pagePlay, pageSwipe:
		return true
	}

	return false
}

type switcherView struct {
	Prefix string
	View   games.View
	Splash bool

	Create    games.CreateForm
	JoinInput string
	JoinError string
	Joining   bool

	Lobby     *games.Lobby
	Players   []games.Player
	ViewerID  string
	Counting  bool
	Countdown int
	Notice    string
}

type playView struct {
	Prefix string
	Game   *games.Gameplay
	Phases []games.RoundPhase
	Error  string

	Images     []games.Image
	Standings  []games.Standing
	Submitted  games.Progress
	Voted      games.Progress
	CanVote    bool
	RevealDone bool
}

type swipeView struct {
	Prefix     string
	Selector   *games.Selector
	Current    games.Image
	HasCurrent bool
	Position   int
	Note       string
}

// Render draws page for this session. The result is the inner markup of
// the page, which is also what gets pushed down the websocket.
func (s *Session) Render(page string) (template.HTML, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		buf bytes.Buffer
		err error
	)

	switch page {
	case pagePlay:
		s.ensurePlay()
		err = views.ExecuteTemplate(&buf, "play", s.playView())
	case pageSwipe:
		s.ensureSwipe()
		err = views.ExecuteTemplate(&buf, "swipe", s.swipeView())
	default:
		err = views.ExecuteTemplate(&buf, "switcher", s.switcherView())
	}
	if err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}

func (s *Session) switcherView() switcherView {
	v := switcherView{
		Prefix:    s.cfg.prefix,
		View:      s.switcher.View(),
		Splash:    s.splash,
		Create:    s.create,
		JoinInput: s.join.Input,
		Joining:   s.join.Submitting,
		ViewerID:  s.viewerID(),
		Notice:    s.notice,
	}

	if s.join.Err != nil {
		v.JoinError = s.join.Err.Error()
	}

	if s.lobby != nil {
		v.Lobby = s.lobby
		v.Players = s.lobby.Players()
		v.Countdown, v.Counting = s.lobby.Countdown()
	}

	return v
}

func (s *Session) playView() playView {
	g := s.play

	v := playView{
		Prefix:    s.cfg.prefix,
		Game:      g,
		Phases:    games.RoundPhases,
		Error:     s.playErr,
		Images:    g.Gallery.Visible(),
		Standings: g.Standings(),
		Submitted: g.SubmissionProgress(),
		Voted:     g.VotingProgress(),
		CanVote:   g.Ballot.CanVote(),
	}

	if g.Reveal != nil {
		v.RevealDone = g.Reveal.Done()
	}

	return v
}

func (s *Session) swipeView() swipeView {
	v := swipeView{
		Prefix:   s.cfg.prefix,
		Selector: s.swipe,
		Position: s.swipe.Index + 1,
		Note:     s.swipeNote,
	}

	v.Current, v.HasCurrent = s.swipe.Current()

	return v
}
