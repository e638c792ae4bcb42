package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeName(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	room.players = append(room.players, &Player{ID: "p1", Name: "Sam"})
	room.spectators = append(room.spectators, &Spectator{ID: "s1", Name: "Alex"})

	assert.Equal(t, "Jordan", room.dedupeName("Jordan"))
	assert.Equal(t, "Sam(2)", room.dedupeName("Sam"))
	assert.Equal(t, "Alex(2)", room.dedupeName("Alex"), "spectator names also collide")
	assert.Equal(t, "Player", room.dedupeName(""))

	room.players = append(room.players, &Player{ID: "p2", Name: "Sam(2)"})
	assert.Equal(t, "Sam(3)", room.dedupeName("Sam"))
}

func TestStandings(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	room.players = []*Player{
		{ID: "p1", Name: "Charlie", Points: 5},
		{ID: "p2", Name: "Alice", Points: 12},
		{ID: "p3", Name: "Bob", Points: 5},
	}

	standings := room.standings()

	assert.Equal(t, "Alice", standings[0].Name)
	assert.Equal(t, "Bob", standings[1].Name, "ties break by name")
	assert.Equal(t, "Charlie", standings[2].Name)
}

func TestRemoveByID(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	room.players = []*Player{{ID: "p1", Name: "Sam"}}
	room.spectators = []*Spectator{{ID: "s1", Name: "Alex"}}

	assert.True(t, room.removeByID("p1"))
	assert.Empty(t, room.players)

	assert.True(t, room.removeByID("s1"))
	assert.Empty(t, room.spectators)

	assert.False(t, room.removeByID("nobody"))
}

func TestRoomActive(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	assert.False(t, room.active())

	room.current = &RoundState{drawerID: "p1"}
	assert.True(t, room.active())

	// Between rounds the session is still active.
	room.current = nil
	room.roundNumber = 1
	assert.True(t, room.active())
}
