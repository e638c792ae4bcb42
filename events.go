/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "encoding/json"

// Broadcaster delivers events to a room's members or to one member. The
// game core only ever sees opaque participant identities, never
// connections.
type Broadcaster interface {
	ToRoom(code string, msg any)
	ToConn(id string, msg any)
}

// Messages coming from clients
type ClientMessage struct {
	Type          string          `json:"type"`                      // "create_room", "join_room", "start_game", "select_term", "stroke", "clear_canvas", "guess", "stop_game", "replace_terms"
	Code          string          `json:"code,omitempty"`            // room code
	Name          string          `json:"name,omitempty"`            // join_room
	Filters       []string        `json:"filters,omitempty"`         // start_game
	RoundsAutoEnd int             `json:"rounds_auto_end,omitempty"` // start_game; <=0 disables
	TermID        string          `json:"term_id,omitempty"`         // select_term
	Stroke        json.RawMessage `json:"stroke,omitempty"`          // stroke
	Text          string          `json:"text,omitempty"`            // guess
	Terms         []TermUpload    `json:"terms,omitempty"`           // replace_terms
}

// Messages sent to clients

type RoomCreatedMessage struct {
	Type  string `json:"type"` // "room_created"
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type JoinResultMessage struct {
	Type  string `json:"type"` // "join_result"
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`   // the joiner's own participant id
	Role  string `json:"role,omitempty"` // "player" or "spectator"
	Code  string `json:"code,omitempty"`
	Name  string `json:"name,omitempty"` // final deduplicated name
	Error string `json:"error,omitempty"`
}

type StartResultMessage struct {
	Type  string `json:"type"` // "start_result"
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type GuessAckMessage struct {
	Type  string `json:"type"` // "guess_ack"
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type TermsResultMessage struct {
	Type  string `json:"type"` // "terms_result"
	OK    bool   `json:"ok"`
	Count int    `json:"count,omitempty"` // accepted records
	Error string `json:"error,omitempty"`
}

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LobbyUpdateMessage struct {
	Type       string        `json:"type"` // "lobby_update"
	Players    []Participant `json:"players"`
	Spectators []Participant `json:"spectators"`
}

type AssignDrawerMessage struct {
	Type     string `json:"type"` // "assign_drawer"
	DrawerID string `json:"drawer_id"`
}

type TermOption struct {
	ID   string `json:"id"`
	Term string `json:"term"`
}

// TermOptionsMessage goes to the drawer only; other participants learn the
// drawer's identity but never the options.
type TermOptionsMessage struct {
	Type    string       `json:"type"` // "term_options"
	Options []TermOption `json:"options"`
}

type RoundStartMessage struct {
	Type    string `json:"type"` // "round_start"
	Round   int    `json:"round"`
	Seconds int    `json:"seconds"`
}

type RoundTickMessage struct {
	Type      string `json:"type"` // "round_tick"
	Remaining int    `json:"remaining"` // whole seconds left
}

type RoundCorrectMessage struct {
	Type             string `json:"type"` // "round_correct"
	GuesserID        string `json:"guesser_id"`
	Term             string `json:"term"` // official term text
	SecondsRemaining int    `json:"seconds_remaining"`
	PointsAwarded    int    `json:"points_awarded"`
}

type RoundTimeoutMessage struct {
	Type string `json:"type"` // "round_timeout"
	Term string `json:"term"` // official term text
}

type GuessStreamMessage struct {
	Type string `json:"type"` // "guess"
	From string `json:"from"`
	Text string `json:"text"` // sanitized
}

type Standing struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
}

type LeaderboardMessage struct {
	Type      string     `json:"type"` // "leaderboard"
	Standings []Standing `json:"standings"`
}

type GameStopMessage struct {
	Type   string `json:"type"` // "game_stop"
	Reason string `json:"reason"`
}

type StrokeMessage struct {
	Type   string          `json:"type"` // "stroke"
	Stroke json.RawMessage `json:"stroke"`
}

type CanvasClearMessage struct {
	Type string `json:"type"` // "canvas_clear"
}

// Stop reasons carried by GameStopMessage.
const (
	stopManual           = "manual"
	stopTeacherGone      = "teacher-disconnected"
	stopNotEnoughPlayers = "not-enough-players"
	stopNoTerms          = "no-terms"
	stopAutoEnd          = "autoEnd"
)
