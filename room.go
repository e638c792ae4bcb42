/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"sort"
	"time"
)

// Player is a scoring participant. Exactly one player holds IsDrawer at a
// time while a round is assigned.
type Player struct {
	ID       string
	Name     string
	Points   int
	IsDrawer bool
}

// Spectator joined after the session started: no points, never draws.
type Spectator struct {
	ID   string
	Name string
}

// RoundState exists only while a round is assigned; it is nil between
// rounds. termID stays empty while the drawer is choosing. gen is the
// generation token stale timer callbacks compare against.
type RoundState struct {
	drawerID string
	termID   string
	endsAt   time.Time
	gen      uint64
}

// Room is one isolated game session, owned by exactly one teacher
// connection and destroyed when that connection goes away.
type Room struct {
	code          string
	teacherID     string
	players       []*Player
	spectators    []*Spectator
	lastDrawerID  string
	current       *RoundState
	terms         []Term
	filters       []string
	roundNumber   int
	roundsAutoEnd int // 0 = no auto-end
	guessRate     map[string]*rateWindow
	roundGen      uint64
}

func newRoom(code, teacherID string, terms []Term) *Room {
	pool := make([]Term, len(terms))
	copy(pool, terms)

	return &Room{
		code:      code,
		teacherID: teacherID,
		terms:     pool,
		guessRate: make(map[string]*rateWindow),
	}
}

func (r *Room) memberCount() int {
	return len(r.players) + len(r.spectators)
}

// active reports whether the session has started: a round is assigned, or
// at least one round has already been played.
func (r *Room) active() bool {
	return r.current != nil || r.roundNumber > 0
}

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) hasName(name string) bool {
	for _, p := range r.players {
		if p.Name == name {
			return true
		}
	}
	for _, s := range r.spectators {
		if s.Name == name {
			return true
		}
	}
	return false
}

// dedupeName appends a numeric suffix to the proposed name until it is
// unique among the room's players and spectators.
func (r *Room) dedupeName(proposed string) string {
	if proposed == "" {
		proposed = "Player"
	}
	if !r.hasName(proposed) {
		return proposed
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s(%d)", proposed, i)
		if !r.hasName(candidate) {
			return candidate
		}
	}
}

// removeByID removes the participant from whichever list contains it.
func (r *Room) removeByID(id string) bool {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	for i, s := range r.spectators {
		if s.ID == id {
			r.spectators = append(r.spectators[:i], r.spectators[i+1:]...)
			return true
		}
	}
	return false
}

// standings returns the scoreboard ordered by points descending, ties
// broken by name.
func (r *Room) standings() []Standing {
	out := make([]Standing, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Points:   p.Points,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Name < out[j].Name
	})

	return out
}

func (r *Room) playerRoster() []Participant {
	out := make([]Participant, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, Participant{ID: p.ID, Name: p.Name})
	}
	return out
}

func (r *Room) spectatorRoster() []Participant {
	out := make([]Participant, 0, len(r.spectators))
	for _, s := range r.spectators {
		out = append(out, Participant{ID: s.ID, Name: s.Name})
	}
	return out
}
