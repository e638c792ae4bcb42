/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"
)

const (
	// No 0/O or 1/I confusion: codes are read off a projector.
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 6

	defaultMaxMembers    = 30
	defaultRoundDuration = 30 * time.Second
	tickInterval         = 500 * time.Millisecond
	roundPause           = 1500 * time.Millisecond
)

// Settings are the per-process game knobs; tests shorten the durations.
type Settings struct {
	RoundDuration time.Duration
	TickInterval  time.Duration
	RoundPause    time.Duration
	MaxMembers    int
}

func defaultSettings() Settings {
	return Settings{
		RoundDuration: defaultRoundDuration,
		TickInterval:  tickInterval,
		RoundPause:    roundPause,
		MaxMembers:    defaultMaxMembers,
	}
}

func randIndex(n int) int {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return int(binary.BigEndian.Uint64(buf[:]) % uint64(n))
}

// newRoomCode generates a crypto-random 6-character room code.
func newRoomCode() string {
	out := make([]byte, roomCodeLength)
	for i := range out {
		out[i] = roomCodeAlphabet[randIndex(len(roomCodeAlphabet))]
	}
	return string(out)
}

type joinResult struct {
	Role string
	Code string
	Name string
}

// Registry owns the set of live rooms. All methods must run on the loop;
// the websocket gateway posts every inbound event there.
type Registry struct {
	cfg      *Config
	loop     *Loop
	cast     Broadcaster
	settings Settings
	terms    []Term // default pool snapshot for new rooms
	maxRooms int
	rooms    map[string]*Room
}

func newRegistry(cfg *Config, loop *Loop, cast Broadcaster, settings Settings, terms []Term, maxRooms int) *Registry {
	return &Registry{
		cfg:      cfg,
		loop:     loop,
		cast:     cast,
		settings: settings,
		terms:    terms,
		maxRooms: maxRooms,
		rooms:    make(map[string]*Room),
	}
}

// CreateRoom opens a room owned by the given teacher connection and
// returns its code. A code collision silently overwrites the old room;
// with a 32^6 space this is accepted rather than re-randomized.
func (g *Registry) CreateRoom(teacherID string) (string, error) {
	if len(g.rooms) >= g.maxRooms {
		return "", errTooManyRooms
	}

	code := newRoomCode()
	g.rooms[code] = newRoom(code, teacherID, g.terms)

	logf(g.cfg, "ROOMS: Created room %s", code)

	return code, nil
}

// JoinRoom adds a participant. Joiners before the first round become
// players; late joiners during an active session become spectators and
// cannot retroactively play it.
func (g *Registry) JoinRoom(code, id, name string) (joinResult, error) {
	room := g.rooms[code]
	if room == nil {
		return joinResult{}, errRoomNotFound
	}
	if room.memberCount()+1 > g.settings.MaxMembers {
		return joinResult{}, errRoomFull
	}

	finalName := room.dedupeName(strings.TrimSpace(name))

	role := "player"
	if room.active() {
		role = "spectator"
		room.spectators = append(room.spectators, &Spectator{ID: id, Name: finalName})
	} else {
		room.players = append(room.players, &Player{ID: id, Name: finalName})
	}

	logf(g.cfg, "ROOMS: %q joined %s as %s", finalName, code, role)

	return joinResult{Role: role, Code: code, Name: finalName}, nil
}

// RemoveParticipant handles a disconnect. If the departing connection is a
// teacher, its room is torn down; otherwise the participant is dropped
// from whichever list holds it and the lobby is re-broadcast. Returns the
// codes of any rooms destroyed, so the gateway can drop subscriptions.
func (g *Registry) RemoveParticipant(id string) []string {
	var destroyed []string

	for code, room := range g.rooms {
		if room.teacherID == id {
			g.cast.ToRoom(code, GameStopMessage{Type: "game_stop", Reason: stopTeacherGone})
			delete(g.rooms, code)
			destroyed = append(destroyed, code)

			logf(g.cfg, "ROOMS: Destroyed room %s (teacher disconnected)", code)

			continue
		}

		if room.removeByID(id) {
			delete(room.guessRate, id)
			g.broadcastLobby(room)
		}
	}

	return destroyed
}

// LobbySnapshot re-broadcasts the lobby for a room, used by the gateway
// after it has subscribed a fresh joiner so they receive the snapshot too.
func (g *Registry) LobbySnapshot(code string) {
	if room := g.rooms[code]; room != nil {
		g.broadcastLobby(room)
	}
}

func (g *Registry) broadcastLobby(room *Room) {
	g.cast.ToRoom(room.code, LobbyUpdateMessage{
		Type:       "lobby_update",
		Players:    room.playerRoster(),
		Spectators: room.spectatorRoster(),
	})
}

func (g *Registry) broadcastLeaderboard(room *Room) {
	g.cast.ToRoom(room.code, LeaderboardMessage{
		Type:      "leaderboard",
		Standings: room.standings(),
	})
}
