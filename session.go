/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Seednode/memebattle/games"
)

const (
	copiedFor      = 2 * time.Second
	splashFor      = 2 * time.Second
	sparklesFor    = 2 * time.Second
	confettiFor    = 3 * time.Second
	promptDelay    = 1 * time.Second
	revealLeadTime = 1 * time.Second
)

// timings collects every simulated delay a session schedules.
type timings struct {
	join      time.Duration
	load      time.Duration
	countdown time.Duration
	reveal    time.Duration
	revealLag time.Duration
	prompt    time.Duration
	copied    time.Duration
	splash    time.Duration
	sparkles  time.Duration
	confetti  time.Duration
}

func (c *Config) timings() timings {
	return timings{
		join:      c.joinDelay,
		load:      c.loadDelay,
		countdown: c.countdownInterval,
		reveal:    c.revealDelay,
		revealLag: revealLeadTime,
		prompt:    promptDelay,
		copied:    copiedFor,
		splash:    splashFor,
		sparkles:  sparklesFor,
		confetti:  confettiFor,
	}
}

var errUnknownMessage = errors.New("unknown message type")

// ClientMessage is anything a browser sends over its socket.
type ClientMessage struct {
	Type      string  `json:"type"`
	Value     string  `json:"value,omitempty"`
	ID        string  `json:"id,omitempty"`
	Phase     string  `json:"phase,omitempty"`
	Leader    *bool   `json:"leader,omitempty"`
	OffsetX   float64 `json:"offset_x,omitempty"`
	VelocityX float64 `json:"velocity_x,omitempty"`
}

// Session is one browser's whole world: which view it is on, the state of
// every view, and the timers that animate them. Nothing in it is shared
// with any other session.
type Session struct {
	id       string
	cfg      *Config
	t        timings
	provider games.Provider

	mu         sync.Mutex
	lastActive time.Time
	closed     bool
	subs       map[chan struct{}]struct{}

	switcher games.Switcher
	splash   bool
	create   games.CreateForm
	join     games.JoinForm
	lobby    *games.Lobby
	notice   string

	play      *games.Gameplay
	playErr   string
	swipe     *games.Selector
	swipeNote string

	splashT, copyT, joinT, countT games.Timer
	loadT, promptT, sparkleT      games.Timer
	revealT, confettiT, swipeT    games.Timer
}

func newSession(cfg *Config, id string, t timings) *Session {
	s := &Session{
		id:         id,
		cfg:        cfg,
		t:          t,
		provider:   cfg.provider,
		lastActive: time.Now(),
		subs:       make(map[chan struct{}]struct{}),
		splash:     true,
	}

	s.mu.Lock()
	s.schedule(&s.splashT, t.splash, func() { s.splash = false })
	s.mu.Unlock()

	return s
}

// schedule runs fn on t after d, under the session lock, followed by a
// re-render. fn is skipped once the session is closed or t has been reset
// or stopped in the meantime. Callers must hold s.mu.
func (s *Session) schedule(t *games.Timer, d time.Duration, fn func()) {
	var gen uint64

	gen = t.Reset(d, func() {
		s.mu.Lock()
		if s.closed || !t.Current(gen) {
			s.mu.Unlock()
			return
		}
		fn()
		s.mu.Unlock()

		s.publish()
	})
}

// Subscribe returns a channel signalled whenever the session changes.
func (s *Session) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	return ch
}

func (s *Session) Unsubscribe(ch chan struct{}) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *Session) publish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
			// A pending signal already covers this change.
		}
	}
}

// Close cancels every timer and disconnects every subscriber.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for _, t := range []*games.Timer{
		&s.splashT, &s.copyT, &s.joinT, &s.countT, &s.loadT,
		&s.promptT, &s.sparkleT, &s.revealT, &s.confettiT, &s.swipeT,
	} {
		t.Stop()
	}

	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}

// Handle applies one client message and notifies subscribers.
func (s *Session) Handle(msg ClientMessage) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.lastActive = time.Now()
	err := s.handleLocked(msg)
	s.mu.Unlock()

	s.publish()

	return err
}

func (s *Session) handleLocked(msg ClientMessage) error {
	switch msg.Type {
	case "create":
		return s.apply(games.ActionCreate, "")
	case "join":
		return s.apply(games.ActionJoin, "")
	case "leave":
		return s.apply(games.ActionLeave, "")
	case "confirm":
		return s.apply(games.ActionConfirm, s.create.Code)
	case "regenerate":
		if s.switcher.View() != games.ViewCreating {
			return games.ErrBadTransition
		}
		s.create.Regenerate(s.provider.InviteCode)
		s.copyT.Stop()
		return nil
	case "copy":
		s.markCopied()
		return nil
	case "join_input":
		s.join.SetInput(msg.Value)
		return nil
	case "join_submit":
		return s.submitJoin()
	case "toggle_ready":
		return s.toggleReady()
	case "start":
		return s.startLobby()
	}

	switch msg.Type {
	case "phase", "advance", "end_game", "search", "select", "submit", "vote", "tab", "leader":
		s.playErr = ""
		err := s.handlePlay(msg)
		if err != nil {
			s.playErr = err.Error()
		}
		return err
	case "swipe_next", "swipe_prev", "swipe_drag", "swipe_select", "swipe_submit":
		return s.handleSwipe(msg)
	}

	return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
}

// apply moves the switcher and sets up or tears down the affected views.
func (s *Session) apply(action games.Action, code string) error {
	from := s.switcher.View()

	if err := s.switcher.Apply(action, code); err != nil {
		return err
	}

	switch from {
	case games.ViewCreating:
		s.copyT.Stop()
	case games.ViewJoining:
		s.joinT.Stop()
		s.join.Cancel()
	case games.ViewLobby:
		s.countT.Stop()
		s.copyT.Stop()
		s.lobby = nil
		s.notice = ""
	}

	switch s.switcher.View() {
	case games.ViewCreating:
		s.create = games.NewCreateForm()
	case games.ViewJoining:
		s.join = games.JoinForm{}
	case games.ViewLobby:
		s.enterLobby()
	}

	logf(s.cfg, "GAMES: Session %s moved %s -> %s", s.id, from, s.switcher.View())

	return nil
}

// OpenJoinLink lands a session on the join view with code filled in, the
// way a scanned QR code or shared link arrives.
func (s *Session) OpenJoinLink(code string) {
	s.mu.Lock()
	if s.closed || s.switcher.View() != games.ViewHome {
		s.mu.Unlock()
		return
	}

	if err := s.apply(games.ActionJoin, ""); err == nil {
		s.join.SetInput(code)
	}
	s.mu.Unlock()

	s.publish()
}

func (s *Session) markCopied() {
	switch s.switcher.View() {
	case games.ViewCreating:
		s.create.Copied = true
	case games.ViewLobby:
		s.lobby.Copied = true
	default:
		return
	}

	s.schedule(&s.copyT, s.t.copied, func() {
		s.create.Copied = false
		if s.lobby != nil {
			s.lobby.Copied = false
		}
	})
}

func (s *Session) submitJoin() error {
	if s.switcher.View() != games.ViewJoining {
		return games.ErrBadTransition
	}

	if err := s.join.Submit(); err != nil {
		return err
	}

	s.schedule(&s.joinT, s.t.join, func() {
		if s.switcher.View() != games.ViewJoining || !s.join.Submitting {
			return
		}

		code, err := s.join.Resolve()
		if err != nil {
			logf(s.cfg, "GAMES: Session %s failed to join with %q", s.id, s.join.Input)
			return
		}

		_ = s.apply(games.ActionAccept, code)
	})

	return nil
}

// viewerID is how the session appears in its own lobby.
func (s *Session) viewerID() string {
	return "viewer-" + s.id
}

func (s *Session) enterLobby() {
	leader := s.switcher.Leader()

	viewer := games.Player{
		ID:       s.viewerID(),
		Name:     "You",
		Avatar:   games.Avatar(s.id),
		IsReady:  true,
		IsLeader: leader,
	}

	players := []games.Player{viewer}
	for _, p := range s.provider.LobbyPlayers(s.switcher.Code()) {
		if leader && p.IsLeader {
			continue
		}
		players = append(players, p)
	}

	s.lobby = games.NewLobby(s.switcher.Code(), players, leader)
	s.notice = ""
	s.syncCountdown()
}

// syncCountdown keeps the countdown timer in step with the lobby: running
// while the lobby counts, stopped the moment it does not.
func (s *Session) syncCountdown() {
	if s.lobby == nil || !s.lobby.Counting() {
		s.countT.Stop()
		return
	}

	if !s.countT.Pending() {
		s.schedule(&s.countT, s.t.countdown, s.tick)
	}
}

func (s *Session) tick() {
	if s.lobby == nil || !s.lobby.Counting() {
		return
	}

	if s.lobby.Tick() {
		s.lobbyStarted()
		return
	}

	s.schedule(&s.countT, s.t.countdown, s.tick)
}

func (s *Session) toggleReady() error {
	if s.lobby == nil {
		return games.ErrBadTransition
	}

	s.lobby.ToggleReady(s.viewerID())
	s.syncCountdown()

	return nil
}

func (s *Session) startLobby() error {
	if s.lobby == nil {
		return games.ErrBadTransition
	}

	if !s.lobby.Leader() {
		s.notice = "Start requested. Waiting for the leader..."
		logf(s.cfg, "GAMES: Session %s requested a start of %s", s.id, s.lobby.Code)
		return nil
	}

	if !s.lobby.Start() {
		return nil
	}

	s.countT.Stop()
	s.lobbyStarted()

	return nil
}

func (s *Session) lobbyStarted() {
	logf(s.cfg, "GAMES: Lobby %s started for session %s", s.lobby.Code, s.id)

	if err := s.switcher.Apply(games.ActionStart, ""); errors.Is(err, games.ErrGameplayUnlinked) {
		s.notice = "The game is starting! Gameplay is not linked to the lobby yet."
	}
}

// ensurePlay opens the gameplay view the first time it is visited.
func (s *Session) ensurePlay() {
	if s.play != nil {
		return
	}

	s.play = games.NewGameplay(s.provider, s.viewerID(), false)
	s.armPhase()
}

// armPhase restarts the timers that belong to the current round phase.
func (s *Session) armPhase() {
	for _, t := range []*games.Timer{&s.promptT, &s.sparkleT, &s.revealT, &s.confettiT} {
		t.Stop()
	}

	g := s.play

	if g.Gallery.Loading {
		gallery := g.Gallery
		s.schedule(&s.loadT, s.t.load, func() {
			gallery.Load(s.provider.Catalog())
		})
	}

	switch g.Phase {
	case games.PhasePrompt:
		s.schedule(&s.promptT, s.t.prompt, func() {
			if g.RevealPrompt() {
				s.schedule(&s.sparkleT, s.t.sparkles, func() { g.Sparkles = false })
			}
		})
	case games.PhaseVoting, games.PhaseResults:
		// Card K turns up K reveal delays after the lead time.
		s.schedule(&s.revealT, s.t.revealLag+s.t.reveal, s.revealNext)
		if g.Phase == games.PhaseResults {
			s.schedule(&s.confettiT, s.t.confetti, func() { g.Confetti = false })
		}
	}
}

func (s *Session) revealNext() {
	if s.play == nil || s.play.Reveal == nil {
		return
	}

	if s.play.Reveal.Step() {
		s.schedule(&s.revealT, s.t.reveal, s.revealNext)
	}
}

func (s *Session) handlePlay(msg ClientMessage) error {
	s.ensurePlay()
	g := s.play

	switch msg.Type {
	case "phase":
		phase, err := games.ParseRoundPhase(msg.Phase)
		if err != nil {
			return err
		}
		changed, err := g.SetPhase(phase)
		if changed {
			s.armPhase()
		}
		return err
	case "advance":
		if err := g.Advance(s.provider); err != nil {
			return err
		}
		logf(s.cfg, "GAMES: Session %s advanced round %d to %s", s.id, g.Round, g.Phase)
		s.armPhase()
	case "end_game":
		if err := g.EndGame(); err != nil {
			return err
		}
		logf(s.cfg, "GAMES: Session %s ended the game", s.id)
		s.armPhase()
	case "search":
		g.Gallery.Search(msg.Value)
	case "select":
		_, err := g.Gallery.Select(msg.ID)
		return err
	case "submit":
		sub, err := g.SubmitImage()
		if err != nil {
			return err
		}
		logf(s.cfg, "GAMES: Session %s submitted %s", s.id, sub.ImageURL)
	case "vote":
		return g.Vote(msg.ID)
	case "tab":
		g.SetTab(msg.Value)
	case "leader":
		if msg.Leader != nil {
			g.SetLeader(*msg.Leader)
		}
	}

	return nil
}

// ensureSwipe opens the swipe selector the first time it is visited.
func (s *Session) ensureSwipe() {
	if s.swipe != nil {
		return
	}

	sel := games.NewSelector()
	s.swipe = sel
	s.schedule(&s.swipeT, s.t.load, func() {
		sel.Load(s.provider.SwipeCatalog())
	})
}

func (s *Session) handleSwipe(msg ClientMessage) error {
	s.ensureSwipe()
	sel := s.swipe
	s.swipeNote = ""

	switch msg.Type {
	case "swipe_next":
		sel.Next()
	case "swipe_prev":
		sel.Prev()
	case "swipe_drag":
		sel.Drag(msg.OffsetX, msg.VelocityX)
	case "swipe_select":
		sel.Select()
	case "swipe_submit":
		url, err := sel.Submit()
		if err != nil {
			s.swipeNote = "Pick a reaction first."
			return err
		}
		logf(s.cfg, "GAMES: Session %s submitted %s from the swiper", s.id, url)
	}

	return nil
}

// Visit prepares the state behind page before it is rendered.
func (s *Session) Visit(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()

	switch page {
	case pagePlay:
		s.ensurePlay()
	case pageSwipe:
		s.ensureSwipe()
	}
}
