package main

import (
	"sync"
	"testing"
	"time"
)

// captureCast records everything the game core broadcasts, standing in for
// the websocket gateway.
type castEntry struct {
	target string // room code or conn id
	msg    any
}

type captureCast struct {
	mu   sync.Mutex
	room []castEntry
	conn []castEntry
}

func (c *captureCast) ToRoom(code string, msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = append(c.room, castEntry{target: code, msg: msg})
}

func (c *captureCast) ToConn(id string, msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = append(c.conn, castEntry{target: id, msg: msg})
}

func (c *captureCast) roomMsgs() []castEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]castEntry, len(c.room))
	copy(out, c.room)
	return out
}

func (c *captureCast) connMsgs() []castEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]castEntry, len(c.conn))
	copy(out, c.conn)
	return out
}

// lastStop returns the most recent stop reason broadcast to the room, or "".
func (c *captureCast) lastStop() string {
	reason := ""
	for _, e := range c.roomMsgs() {
		if stop, ok := e.msg.(GameStopMessage); ok {
			reason = stop.Reason
		}
	}
	return reason
}

// termOptionsFor returns the most recent term options sent to the given
// connection.
func (c *captureCast) termOptionsFor(id string) []TermOption {
	var options []TermOption
	for _, e := range c.connMsgs() {
		if e.target != id {
			continue
		}
		if msg, ok := e.msg.(TermOptionsMessage); ok {
			options = msg.Options
		}
	}
	return options
}

func newTestGame(t *testing.T, settings Settings, terms []Term) (*Registry, *captureCast, *Loop) {
	t.Helper()

	loop := newLoop()
	t.Cleanup(loop.Stop)

	cast := &captureCast{}
	game := newRegistry(&Config{}, loop, cast, settings, terms, 512)

	return game, cast, loop
}

func testSettings() Settings {
	return Settings{
		RoundDuration: 3 * time.Second,
		TickInterval:  25 * time.Millisecond,
		RoundPause:    50 * time.Millisecond,
		MaxMembers:    defaultMaxMembers,
	}
}
