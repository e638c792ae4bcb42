/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn *websocket.Conn
	send chan any
	id   string
}

// Gateway owns the websocket connections and the room subscription table,
// implements Broadcaster for the game core, and posts every inbound event
// onto the loop. The core never sees a connection, only its id.
type Gateway struct {
	cfg  *Config
	loop *Loop
	game *Registry

	mu    sync.Mutex
	conns map[string]*wsClient
	rooms map[string]map[string]*wsClient
}

func newGateway(cfg *Config) *Gateway {
	return &Gateway{
		cfg:   cfg,
		conns: make(map[string]*wsClient),
		rooms: make(map[string]map[string]*wsClient),
	}
}

func (gw *Gateway) attach(game *Registry, loop *Loop) {
	gw.game = game
	gw.loop = loop
}

// ToRoom delivers msg to every connection subscribed to the room.
func (gw *Gateway) ToRoom(code string, msg any) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	for _, c := range gw.rooms[code] {
		gw.sendLocked(c, msg)
	}
}

// ToConn delivers msg to a single connection.
func (gw *Gateway) ToConn(id string, msg any) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if c := gw.conns[id]; c != nil {
		gw.sendLocked(c, msg)
	}
}

func (gw *Gateway) sendLocked(c *wsClient, msg any) {
	select {
	case c.send <- msg:
	default:
		gw.dropLocked(c)
	}
}

// dropLocked removes a connection from every table and closes it. Safe to
// call twice; presence in conns is the single-close guard.
func (gw *Gateway) dropLocked(c *wsClient) {
	if _, ok := gw.conns[c.id]; !ok {
		return
	}
	delete(gw.conns, c.id)
	for _, members := range gw.rooms {
		delete(members, c.id)
	}
	close(c.send)
	_ = c.conn.Close()
}

func (gw *Gateway) subscribe(c *wsClient, code string) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	members := gw.rooms[code]
	if members == nil {
		members = make(map[string]*wsClient)
		gw.rooms[code] = members
	}
	members[c.id] = c
}

// dropRooms clears the subscription tables of destroyed rooms. Their
// remaining connections stay open; they already received the stop notice.
func (gw *Gateway) dropRooms(codes []string) {
	if len(codes) == 0 {
		return
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()

	for _, code := range codes {
		delete(gw.rooms, code)
	}
}

func (gw *Gateway) register(c *wsClient) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	gw.conns[c.id] = c
}

func (gw *Gateway) unregister(c *wsClient) {
	gw.mu.Lock()
	gw.dropLocked(c)
	gw.mu.Unlock()

	gw.loop.Post(func() {
		gw.dropRooms(gw.game.RemoveParticipant(c.id))
	})
}

// serveWS upgrades the connection and runs its pumps.
func serveWS(cfg *Config, gw *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade error from %s: %v", realIP(r), err)
			return
		}

		client := &wsClient{
			conn: conn,
			send: make(chan any, 32),
			id:   uuid.NewString(),
		}

		gw.register(client)

		go client.writePump()
		gw.readPump(client)
	}
}

func (gw *Gateway) readPump(c *wsClient) {
	defer gw.unregister(c)

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		gw.dispatch(c, msg)
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// dispatch runs one inbound event. Actions needing a synchronous outcome
// run via Do so the ack reflects the completed mutation; fire-and-forget
// actions are posted.
func (gw *Gateway) dispatch(c *wsClient, msg ClientMessage) {
	switch msg.Type {
	case "create_room":
		gw.loop.Do(func() {
			code, err := gw.game.CreateRoom(c.id)
			if err != nil {
				gw.ToConn(c.id, RoomCreatedMessage{Type: "room_created", Error: err.Error()})
				return
			}
			gw.subscribe(c, code)
			gw.ToConn(c.id, RoomCreatedMessage{Type: "room_created", OK: true, Code: code})
		})

	case "join_room":
		gw.loop.Do(func() {
			res, err := gw.game.JoinRoom(msg.Code, c.id, msg.Name)
			if err != nil {
				gw.ToConn(c.id, JoinResultMessage{Type: "join_result", Error: err.Error()})
				return
			}
			gw.subscribe(c, res.Code)
			gw.ToConn(c.id, JoinResultMessage{
				Type: "join_result",
				OK:   true,
				ID:   c.id,
				Role: res.Role,
				Code: res.Code,
				Name: res.Name,
			})
			gw.game.LobbySnapshot(res.Code)
		})

	case "start_game":
		gw.loop.Do(func() {
			err := gw.game.StartGame(msg.Code, c.id, msg.Filters, msg.RoundsAutoEnd)
			ack := StartResultMessage{Type: "start_result", OK: err == nil}
			if err != nil {
				ack.Error = err.Error()
			}
			gw.ToConn(c.id, ack)
		})

	case "select_term":
		gw.loop.Post(func() {
			gw.game.SelectTerm(msg.Code, c.id, msg.TermID)
		})

	case "stroke":
		gw.loop.Post(func() {
			gw.game.SubmitStroke(msg.Code, c.id, msg.Stroke)
		})

	case "clear_canvas":
		gw.loop.Post(func() {
			gw.game.ClearCanvas(msg.Code, c.id)
		})

	case "guess":
		gw.loop.Do(func() {
			accepted, err := gw.game.SubmitGuess(msg.Code, c.id, msg.Text)
			switch {
			case err != nil:
				gw.ToConn(c.id, GuessAckMessage{Type: "guess_ack", Error: err.Error()})
			case accepted:
				gw.ToConn(c.id, GuessAckMessage{Type: "guess_ack", OK: true})
			}
		})

	case "stop_game":
		gw.loop.Post(func() {
			if err := gw.game.StopGame(msg.Code, c.id); err != nil {
				logf(gw.cfg, "WS: Rejected stop_game from %s: %v", c.id, err)
			}
		})

	case "replace_terms":
		gw.loop.Do(func() {
			count, err := gw.game.ReplaceTerms(msg.Code, c.id, msg.Terms)
			ack := TermsResultMessage{Type: "terms_result", OK: err == nil, Count: count}
			if err != nil {
				ack.Error = err.Error()
			}
			gw.ToConn(c.id, ack)
		})

	default:
		// ignore unknown types
	}
}
