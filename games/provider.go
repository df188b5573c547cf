/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"fmt"
	"sync"
)

// Player is a lobby or round participant. Scores and flags are whatever the
// provider says they are; nothing here keeps them consistent.
type Player struct {
	ID           string
	Name         string
	Avatar       string
	IsReady      bool
	IsLeader     bool
	Score        int
	HasSubmitted bool
	HasVoted     bool
}

// Image is one entry of a reaction catalog.
type Image struct {
	ID  string `mapstructure:"id"`
	URL string `mapstructure:"url"`
	Alt string `mapstructure:"alt"`
}

// Submission pairs a player's chosen image with its vote count.
type Submission struct {
	ID           string
	PlayerID     string
	PlayerName   string
	PlayerAvatar string
	ImageURL     string
	Votes        int
	IsWinner     bool
}

// Provider supplies every piece of data the views render. The views never
// build data themselves, so a real backend only has to satisfy this.
type Provider interface {
	InviteCode() string
	LobbyPlayers(code string) []Player
	Catalog() []Image
	SwipeCatalog() []Image
	Prompt() string
	RoundPlayers() []Player
	Submissions() []Submission
}

// Avatar returns the generated avatar URL for seed.
func Avatar(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

func unsplash(photo string, width int) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%s?w=%d&q=80", photo, width)
}

var catalogPhotos = []struct{ photo, alt string }{
	{"1513360371669-4adf3dd7dff8", "Surprised cat"},
	{"1501820488136-72669149e0d4", "Laughing dog"},
	{"1583512603805-3cc6b41f3edb", "Shocked face"},
	{"1566385101042-1a0aa0c1268c", "Eye roll"},
	{"1509909756405-be0199881695", "Happy kid"},
	{"1517849845537-4d257902454a", "Confused dog"},
	{"1575936123452-b67c3203c357", "Grumpy cat"},
	{"1526336024174-e58f5cdd8e13", "Excited puppy"},
	{"1561948955-570b270e7c36", "Sleepy cat"},
	{"1543852786-1cf6624b9987", "Angry bird"},
	{"1504006833117-8886a355efbf", "Surprised monkey"},
	{"1537151608828-ea2b11777ee8", "Laughing baby"},
}

const defaultPrompt = "What do you call a dog that can do magic tricks?"

// MockProvider serves fixed mock data. Images and Prompts, when
// set, replace the built-in catalog and prompt.
type MockProvider struct {
	Images  []Image
	Swipe   []Image
	Prompts []string

	mu   sync.Mutex
	next int
}

func (m *MockProvider) InviteCode() string { return NewInviteCode() }

func (m *MockProvider) LobbyPlayers(string) []Player {
	return []Player{
		{ID: "1", Name: "Player 1", Avatar: Avatar("player1"), IsReady: true, IsLeader: true},
		{ID: "2", Name: "Player 2", Avatar: Avatar("player2"), IsReady: true},
		{ID: "3", Name: "Player 3", Avatar: Avatar("player3"), IsReady: true},
	}
}

func (m *MockProvider) Catalog() []Image {
	if len(m.Images) > 0 {
		return append([]Image(nil), m.Images...)
	}

	out := make([]Image, 0, len(catalogPhotos))
	for i, p := range catalogPhotos {
		out = append(out, Image{ID: fmt.Sprint(i + 1), URL: unsplash(p.photo, 300), Alt: p.alt})
	}

	return out
}

func (m *MockProvider) SwipeCatalog() []Image {
	if len(m.Swipe) > 0 {
		return append([]Image(nil), m.Swipe...)
	}

	out := make([]Image, 0, 8)
	for i, p := range catalogPhotos[:8] {
		out = append(out, Image{ID: fmt.Sprint(i + 1), URL: unsplash(p.photo, 500), Alt: p.alt})
	}

	return out
}

// Prompt cycles through Prompts, or returns the built-in prompt.
func (m *MockProvider) Prompt() string {
	if len(m.Prompts) == 0 {
		return defaultPrompt
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.Prompts[m.next%len(m.Prompts)]
	m.next++

	return p
}

func (m *MockProvider) RoundPlayers() []Player {
	return []Player{
		{ID: "player1", Name: "Player 1", Avatar: Avatar("player1"), Score: 5, HasSubmitted: true},
		{ID: "player2", Name: "Player 2", Avatar: Avatar("player2"), Score: 3, HasSubmitted: true, HasVoted: true},
		{ID: "player3", Name: "Player 3", Avatar: Avatar("player3"), Score: 2},
	}
}

func (m *MockProvider) Submissions() []Submission {
	return []Submission{
		{ID: "1", PlayerID: "player1", PlayerName: "Player 1", PlayerAvatar: Avatar("player1"),
			ImageURL: unsplash("1517849845537-4d257902454a", 400), Votes: 3, IsWinner: true},
		{ID: "2", PlayerID: "player2", PlayerName: "Player 2", PlayerAvatar: Avatar("player2"),
			ImageURL: unsplash("1583512603805-3cc6b41f3edb", 400), Votes: 1},
		{ID: "3", PlayerID: "player3", PlayerName: "Player 3", PlayerAvatar: Avatar("player3"),
			ImageURL: unsplash("1533738363-b7f9aef128ce", 400), Votes: 2},
	}
}
