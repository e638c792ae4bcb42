package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowGuessBurstCap(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	now := time.Now()

	// 6 guesses within 500ms: exactly 5 accepted, 1 rejected.
	accepted := 0
	for i := 0; i < 6; i++ {
		if room.allowGuess("p1", now.Add(time.Duration(i)*100*time.Millisecond)) {
			accepted++
		}
	}
	assert.Equal(t, 5, accepted)
}

func TestAllowGuessWindowReset(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	now := time.Now()

	for n_ := 0; n_ < 6; n_++ {
		room.allowGuess("p1", now)
	}
	assert.False(t, room.allowGuess("p1", now.Add(900*time.Millisecond)))

	// More than 1000ms after the window start, the counter resets.
	assert.True(t, room.allowGuess("p1", now.Add(1100*time.Millisecond)))
}

func TestAllowGuessPerParticipant(t *testing.T) {
	room := newRoom("ABCDEF", "teacher", nil)
	now := time.Now()

	for n_ := 0; n_ < 5; n_++ {
		assert.True(t, room.allowGuess("p1", now))
	}
	assert.False(t, room.allowGuess("p1", now))

	// A different participant has their own window.
	assert.True(t, room.allowGuess("p2", now))
}
