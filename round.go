// Round orchestration for a room:
//
//	Lobby -> ChoosingTerm -> Drawing -> Resolved (correct or timeout)
//	                ^                        |
//	                +---- 1.5s pause --------+  (or Stopped)
//
// A round is assigned while room.current is non-nil; the drawer is still
// choosing while current.termID is empty. Every recurring tick captures
// the round's generation token at schedule time and self-cancels when the
// live round no longer carries it, which tolerates a correct guess racing
// ahead of a tick or timeout without explicit timer cancellation.

package main

import "time"

// secondsRemaining is the whole seconds left before endsAt, the ceiling of
// the remaining milliseconds, floored at 0.
func secondsRemaining(endsAt, now time.Time) int {
	ms := endsAt.Sub(now).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + 999) / 1000)
}

// nextDrawerID picks the next drawer uniformly at random from all players
// except the previous round's drawer, falling back to the full list when
// that exclusion would empty the pool. Empty result means the round
// cannot proceed.
func nextDrawerID(room *Room) string {
	if len(room.players) < 2 {
		return ""
	}

	candidates := make([]string, 0, len(room.players))
	for _, p := range room.players {
		if p.ID != room.lastDrawerID {
			candidates = append(candidates, p.ID)
		}
	}
	if len(candidates) == 0 {
		for _, p := range room.players {
			candidates = append(candidates, p.ID)
		}
	}

	return candidates[randIndex(len(candidates))]
}

// StartGame begins the first round. Teacher-only; requires at least two
// players. Captures the requested topic filters and optional auto-end
// round count, and resets the round counter.
func (g *Registry) StartGame(code, connID string, filters []string, roundsAutoEnd int) error {
	room := g.rooms[code]
	if room == nil {
		return errRoomNotFound
	}
	if room.teacherID != connID {
		return errUnauthorized
	}
	if len(room.players) < 2 {
		return errNotEnoughPlayers
	}

	room.filters = filters
	if roundsAutoEnd > 0 {
		room.roundsAutoEnd = roundsAutoEnd
	} else {
		room.roundsAutoEnd = 0
	}
	room.roundNumber = 0

	g.startRound(room)

	return nil
}

func (g *Registry) startRound(room *Room) {
	room.roundNumber++

	drawerID := nextDrawerID(room)
	if drawerID == "" {
		g.stopGame(room, stopNotEnoughPlayers)
		return
	}

	for _, p := range room.players {
		p.IsDrawer = p.ID == drawerID
	}

	room.roundGen++
	room.current = &RoundState{
		drawerID: drawerID,
		gen:      room.roundGen,
	}

	g.cast.ToRoom(room.code, AssignDrawerMessage{Type: "assign_drawer", DrawerID: drawerID})

	pool := filterPool(room.terms, room.filters)
	if len(pool) == 0 {
		g.stopGame(room, stopNoTerms)
		return
	}

	options := make([]TermOption, 0, termOptionCount)
	for _, t := range sampleTerms(pool, termOptionCount) {
		options = append(options, TermOption{ID: t.ID, Term: t.Term})
	}

	g.cast.ToConn(drawerID, TermOptionsMessage{Type: "term_options", Options: options})

	logf(g.cfg, "GAME: Room %s round %d, drawer %s", room.code, room.roundNumber, drawerID)
}

// SelectTerm starts the drawing phase. Only the assigned drawer may call
// it, and only while no term is yet selected; anything else is silently
// ignored.
func (g *Registry) SelectTerm(code, connID, termID string) {
	room := g.rooms[code]
	if room == nil || room.current == nil {
		return
	}
	if room.current.drawerID != connID || room.current.termID != "" {
		return
	}
	if findTerm(room.terms, termID) == nil {
		return
	}

	room.current.termID = termID
	room.current.endsAt = time.Now().Add(g.settings.RoundDuration)

	g.cast.ToRoom(code, RoundStartMessage{
		Type:    "round_start",
		Round:   room.roundNumber,
		Seconds: int(g.settings.RoundDuration / time.Second),
	})

	gen := room.current.gen
	g.loop.Every(g.settings.TickInterval, func() bool {
		cur := room.current
		if cur == nil || cur.gen != gen {
			return false // round resolved under us
		}

		remaining := secondsRemaining(cur.endsAt, time.Now())
		g.cast.ToRoom(room.code, RoundTickMessage{Type: "round_tick", Remaining: remaining})

		if remaining <= 0 {
			g.resolveTimeout(room)
			return false
		}
		return true
	})
}

func (g *Registry) resolveTimeout(room *Room) {
	official := "Term"
	if t := findTerm(room.terms, room.current.termID); t != nil {
		official = t.Term
	}

	g.cast.ToRoom(room.code, RoundTimeoutMessage{Type: "round_timeout", Term: official})

	room.lastDrawerID = room.current.drawerID
	room.current = nil

	g.scheduleAdvance(room)
}

func (g *Registry) resolveCorrect(room *Room, guesser *Player, term *Term) {
	remaining := secondsRemaining(room.current.endsAt, time.Now())

	if drawer := room.findPlayer(room.current.drawerID); drawer != nil {
		drawer.Points += remaining
	}
	guesser.Points += remaining

	g.broadcastLeaderboard(room)

	g.cast.ToRoom(room.code, RoundCorrectMessage{
		Type:             "round_correct",
		GuesserID:        guesser.ID,
		Term:             term.Term,
		SecondsRemaining: remaining,
		PointsAwarded:    remaining,
	})

	logf(g.cfg, "GAME: Room %s round %d guessed by %q for %d points", room.code, room.roundNumber, guesser.Name, remaining)

	room.lastDrawerID = room.current.drawerID
	room.current = nil

	g.scheduleAdvance(room)
}

// scheduleAdvance starts the next round after the inter-round pause, or
// stops the game if the configured auto-end round count has been reached.
func (g *Registry) scheduleAdvance(room *Room) {
	g.loop.After(g.settings.RoundPause, func() {
		if g.rooms[room.code] != room {
			return // room torn down during the pause
		}
		if room.roundsAutoEnd > 0 && room.roundNumber >= room.roundsAutoEnd {
			g.stopGame(room, stopAutoEnd)
		} else {
			g.startRound(room)
		}
	})
}

// SubmitGuess runs the guess pipeline: drawer and non-player submissions
// are silently dropped, rate-limited guesses are rejected to the sender
// only, and everything else is sanitized and broadcast to the guess
// stream before match evaluation. The returned bool reports whether the
// guess was accepted into the stream.
func (g *Registry) SubmitGuess(code, connID, text string) (bool, error) {
	room := g.rooms[code]
	if room == nil || room.current == nil {
		return false, nil
	}
	if connID == room.current.drawerID {
		return false, nil // the drawer never guesses their own round
	}

	player := room.findPlayer(connID)
	if player == nil {
		return false, nil // spectators cannot guess
	}

	if !room.allowGuess(connID, time.Now()) {
		return false, errRateLimited
	}

	safe := sanitizeGuess(text)
	g.cast.ToRoom(code, GuessStreamMessage{Type: "guess", From: player.Name, Text: safe})

	if safe == redactedMarker {
		return true, nil // redacted guesses are excluded from evaluation
	}

	term := findTerm(room.terms, room.current.termID)
	if term == nil {
		return true, nil
	}

	if isMatch(text, *term) {
		g.resolveCorrect(room, player, term)
	}

	return true, nil
}

// SubmitStroke re-broadcasts stroke data verbatim when the sender is the
// current drawer; anything else is ignored.
func (g *Registry) SubmitStroke(code, connID string, stroke []byte) {
	room := g.rooms[code]
	if room == nil || room.current == nil {
		return
	}
	if connID != room.current.drawerID {
		return
	}

	g.cast.ToRoom(code, StrokeMessage{Type: "stroke", Stroke: stroke})
}

// ClearCanvas re-broadcasts a canvas clear when the sender is the current
// drawer or the teacher.
func (g *Registry) ClearCanvas(code, connID string) {
	room := g.rooms[code]
	if room == nil || room.current == nil {
		return
	}
	if connID != room.current.drawerID && connID != room.teacherID {
		return
	}

	g.cast.ToRoom(code, CanvasClearMessage{Type: "canvas_clear"})
}

// StopGame is the teacher's manual stop: the round state is cleared
// immediately but the room survives.
func (g *Registry) StopGame(code, connID string) error {
	room := g.rooms[code]
	if room == nil {
		return errRoomNotFound
	}
	if room.teacherID != connID {
		return errUnauthorized
	}

	g.stopGame(room, stopManual)

	return nil
}

func (g *Registry) stopGame(room *Room, reason string) {
	room.current = nil
	g.cast.ToRoom(room.code, GameStopMessage{Type: "game_stop", Reason: reason})

	logf(g.cfg, "GAME: Room %s stopped (%s)", room.code, reason)
}

// ReplaceTerms swaps the room's term pool for a validated copy of the
// uploaded records and returns the accepted count. Teacher-only.
func (g *Registry) ReplaceTerms(code, connID string, uploads []TermUpload) (int, error) {
	room := g.rooms[code]
	if room == nil {
		return 0, errRoomNotFound
	}
	if room.teacherID != connID {
		return 0, errUnauthorized
	}
	if uploads == nil {
		return 0, errInvalidInput
	}

	cleaned := cleanTerms(uploads)
	room.terms = cleaned

	logf(g.cfg, "GAME: Room %s term pool replaced (%d accepted)", code, len(cleaned))

	return len(cleaned), nil
}
