/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"fmt"
)

var (
	ErrBadTransition    = errors.New("transition not allowed from current view")
	ErrGameplayUnlinked = errors.New("lobby is not linked to gameplay")
)

// View is the top-level screen a session is looking at.
type View string

const (
	ViewHome     View = "home"
	ViewCreating View = "creating"
	ViewJoining  View = "joining"
	ViewLobby    View = "lobby"
)

// Action is a user intent that may move the switcher to another view.
type Action string

const (
	ActionCreate  Action = "create"
	ActionJoin    Action = "join"
	ActionConfirm Action = "confirm"
	ActionAccept  Action = "accept"
	ActionLeave   Action = "leave"
	ActionStart   Action = "start"
)

type edge struct {
	from   View
	action Action
}

type outcome struct {
	to       View
	setCode  bool
	clear    bool
	leader   bool
	unlinked bool
}

// transitions is the complete table; anything missing is rejected.
var transitions = map[edge]outcome{
	{ViewHome, ActionCreate}:      {to: ViewCreating},
	{ViewHome, ActionJoin}:        {to: ViewJoining},
	{ViewCreating, ActionConfirm}: {to: ViewLobby, setCode: true, leader: true},
	{ViewCreating, ActionLeave}:   {to: ViewHome, clear: true},
	{ViewJoining, ActionAccept}:   {to: ViewLobby, setCode: true},
	{ViewJoining, ActionLeave}:    {to: ViewHome, clear: true},
	{ViewLobby, ActionLeave}:      {to: ViewHome, clear: true},

	// Nothing produces a gameplay phase from the lobby yet.
	{ViewLobby, ActionStart}: {unlinked: true},
}

// Switcher holds the top-level view and the invite code the session is using.
// The zero value sits on the home view.
type Switcher struct {
	view   View
	code   string
	leader bool
}

func (s *Switcher) View() View {
	if s.view == "" {
		return ViewHome
	}

	return s.view
}

func (s *Switcher) Code() string { return s.code }

// Leader reports whether the session entered the lobby by creating it.
func (s *Switcher) Leader() bool { return s.leader }

// Allowed reports whether action is defined for the current view.
func (s *Switcher) Allowed(action Action) bool {
	o, ok := transitions[edge{s.View(), action}]

	return ok && !o.unlinked
}

// Apply performs action. code is only consulted by confirm and accept.
func (s *Switcher) Apply(action Action, code string) error {
	from := s.View()

	o, ok := transitions[edge{from, action}]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrBadTransition, action, from)
	}
	if o.unlinked {
		return ErrGameplayUnlinked
	}

	switch {
	case o.setCode:
		s.code = code
		s.leader = o.leader
	case o.clear:
		s.code = ""
		s.leader = false
	}

	s.view = o.to

	return nil
}
