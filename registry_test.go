package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomCode(t *testing.T) {
	seen := make(map[string]bool)

	for n_ := 0; n_ < 100; n_++ {
		code := newRoomCode()
		assert.Len(t, code, roomCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = true
	}

	// Not a collision proof, just a sanity check on the generator.
	assert.Greater(t, len(seen), 90)
}

func TestCreateRoom(t *testing.T) {
	game, _, loop := newTestGame(t, testSettings(), testTerms())

	loop.Do(func() {
		code, err := game.CreateRoom("teacher-1")
		require.NoError(t, err)
		assert.Len(t, code, roomCodeLength)

		room := game.rooms[code]
		require.NotNil(t, room)
		assert.Equal(t, "teacher-1", room.teacherID)
		assert.Equal(t, len(testTerms()), len(room.terms))
	})
}

func TestCreateRoomLimit(t *testing.T) {
	game, _, loop := newTestGame(t, testSettings(), testTerms())
	game.maxRooms = 1

	loop.Do(func() {
		_, err := game.CreateRoom("teacher-1")
		require.NoError(t, err)

		_, err = game.CreateRoom("teacher-2")
		assert.ErrorIs(t, err, errTooManyRooms)
	})
}

func TestJoinRoom(t *testing.T) {
	game, _, loop := newTestGame(t, testSettings(), testTerms())

	loop.Do(func() {
		code, err := game.CreateRoom("teacher-1")
		require.NoError(t, err)

		res, err := game.JoinRoom(code, "p1", "Sam")
		require.NoError(t, err)
		assert.Equal(t, "player", res.Role)
		assert.Equal(t, "Sam", res.Name)

		// Colliding name gets a numeric suffix.
		res, err = game.JoinRoom(code, "p2", "Sam")
		require.NoError(t, err)
		assert.Equal(t, "Sam(2)", res.Name)

		_, err = game.JoinRoom("ZZZZZZ", "p3", "Alex")
		assert.ErrorIs(t, err, errRoomNotFound)
	})
}

func TestJoinRoomFull(t *testing.T) {
	settings := testSettings()
	settings.MaxMembers = 3
	game, _, loop := newTestGame(t, settings, testTerms())

	loop.Do(func() {
		code, err := game.CreateRoom("teacher-1")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := game.JoinRoom(code, string(rune('a'+i)), "Player")
			require.NoError(t, err)
		}

		_, err = game.JoinRoom(code, "overflow", "Player")
		assert.ErrorIs(t, err, errRoomFull)
	})
}

func TestLateJoinerBecomesSpectator(t *testing.T) {
	game, cast, loop := newTestGame(t, testSettings(), testTerms())

	loop.Do(func() {
		code, _ := game.CreateRoom("teacher-1")
		_, _ = game.JoinRoom(code, "p1", "Sam")
		_, _ = game.JoinRoom(code, "p2", "Alex")

		require.NoError(t, game.StartGame(code, "teacher-1", nil, 0))

		res, err := game.JoinRoom(code, "late", "Riley")
		require.NoError(t, err)
		assert.Equal(t, "spectator", res.Role)

		// Spectators never receive term options or drawer eligibility.
		assert.Empty(t, cast.termOptionsFor("late"))
		assert.Nil(t, game.rooms[code].findPlayer("late"))
	})
}

func TestRemoveParticipantTeacherDestroysRoom(t *testing.T) {
	game, cast, loop := newTestGame(t, testSettings(), testTerms())

	loop.Do(func() {
		code, _ := game.CreateRoom("teacher-1")
		_, _ = game.JoinRoom(code, "p1", "Sam")

		destroyed := game.RemoveParticipant("teacher-1")
		assert.Equal(t, []string{code}, destroyed)
		assert.Nil(t, game.rooms[code])
		assert.Equal(t, stopTeacherGone, cast.lastStop())
	})
}

func TestRemoveParticipantPlayer(t *testing.T) {
	game, cast, loop := newTestGame(t, testSettings(), testTerms())

	loop.Do(func() {
		code, _ := game.CreateRoom("teacher-1")
		_, _ = game.JoinRoom(code, "p1", "Sam")
		_, _ = game.JoinRoom(code, "p2", "Alex")

		destroyed := game.RemoveParticipant("p1")
		assert.Empty(t, destroyed)

		room := game.rooms[code]
		require.NotNil(t, room)
		assert.Nil(t, room.findPlayer("p1"))

		// Departure re-broadcasts the lobby snapshot.
		var lobby *LobbyUpdateMessage
		for _, e := range cast.roomMsgs() {
			if msg, ok := e.msg.(LobbyUpdateMessage); ok {
				lobby = &msg
			}
		}
		require.NotNil(t, lobby)
		require.Len(t, lobby.Players, 1)
		assert.Equal(t, "Alex", lobby.Players[0].Name)
	})
}
