/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "fmt"

const (
	CountdownStart = 5
	MinPlayers     = 2
)

// Lobby tracks who is waiting and drives the auto-start countdown.
// It holds no timer itself: the owner calls Tick once per interval while
// Counting reports true.
type Lobby struct {
	Code   string
	Copied bool

	players  []Player
	leader   bool
	counting bool
	count    int
	started  bool
}

func NewLobby(code string, players []Player, leader bool) *Lobby {
	l := &Lobby{Code: code, leader: leader}
	l.SetPlayers(players)

	return l
}

// AllReady is the auto-start precondition: enough players and every one
// of them ready. Leadership is checked separately in Armed.
func AllReady(players []Player) bool {
	if len(players) < MinPlayers {
		return false
	}

	for _, p := range players {
		if !p.IsReady {
			return false
		}
	}

	return true
}

// Armed reports whether the countdown should be running right now.
func (l *Lobby) Armed() bool {
	return l.leader && AllReady(l.players) && !l.started
}

func (l *Lobby) Players() []Player { return append([]Player(nil), l.players...) }

func (l *Lobby) Leader() bool { return l.leader }

func (l *Lobby) Started() bool { return l.started }

// SetPlayers replaces the player list and re-evaluates the countdown.
func (l *Lobby) SetPlayers(players []Player) {
	l.players = append([]Player(nil), players...)
	l.recompute()
}

// SetLeader changes the viewer's role and re-evaluates the countdown.
func (l *Lobby) SetLeader(leader bool) {
	l.leader = leader
	l.recompute()
}

// ToggleReady flips the ready flag of player id. It reports whether the
// player was found.
func (l *Lobby) ToggleReady(id string) bool {
	for i := range l.players {
		if l.players[i].ID == id {
			l.players[i].IsReady = !l.players[i].IsReady
			l.recompute()

			return true
		}
	}

	return false
}

// recompute arms a fresh countdown when the precondition newly holds and
// drops it the moment it stops holding. A countdown already running while
// the precondition keeps holding is left alone.
func (l *Lobby) recompute() {
	switch {
	case l.Armed() && !l.counting:
		l.counting = true
		l.count = CountdownStart
	case !l.Armed():
		l.counting = false
		l.count = 0
	}
}

// Countdown returns the remaining seconds and whether a countdown is running.
func (l *Lobby) Countdown() (int, bool) {
	return l.count, l.counting
}

// Counting reports whether Tick should be called again.
func (l *Lobby) Counting() bool { return l.counting }

// Tick advances the countdown by one step. It reports true exactly once,
// on the step that reaches zero, after which the lobby counts as started.
func (l *Lobby) Tick() bool {
	if !l.counting {
		return false
	}

	if l.count > 0 {
		l.count--
	}

	if l.count > 0 {
		return false
	}

	l.counting = false
	l.started = true

	return true
}

// Start marks the lobby as started by hand, cancelling any countdown.
// Only the leader may start, and only once the precondition holds.
func (l *Lobby) Start() bool {
	if !l.leader || !AllReady(l.players) || l.started {
		return false
	}

	l.counting = false
	l.count = 0
	l.started = true

	return true
}

// ReadyCount returns how many players are ready.
func (l *Lobby) ReadyCount() int {
	n := 0
	for _, p := range l.players {
		if p.IsReady {
			n++
		}
	}

	return n
}

// CanStart reports whether the leader's start button is enabled.
func (l *Lobby) CanStart() bool {
	return AllReady(l.players)
}

// ButtonLabel is the text of the leader's start button.
func (l *Lobby) ButtonLabel() string {
	if n, ok := l.Countdown(); ok {
		return fmt.Sprintf("Starting in %d...", n)
	}

	return "Start Game"
}
