package games

// A teacher opens a room and projects the 6-character code (or the QR link)
// Students join with a display name; duplicate names get a numeric suffix
// Once at least two players are in, the teacher starts the game, optionally
// filtering the term pool by topic and setting a round count to end on

// Each round, one player is picked to draw (never the same player twice in
// a row while others are available) and offered three terms from the pool
// The drawer picks one and has 30 seconds to draw it while everyone else
// types guesses into a shared stream

// Guesses are matched fuzzily, so minor misspellings still count
// The first correct guess ends the round; both the drawer and the guesser
// earn one point per whole second left on the clock
// If nobody gets it, the round times out and the term is revealed

// Rounds keep starting automatically until the teacher stops the game,
// the configured round count is reached, or the teacher disconnects

// Implementation details:
// - One websocket per participant; all game state is in memory
// - Students joining after the first round has started spectate only
// - Guess bursts are capped at five per second per participant
