/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "time"

const (
	// guessBurstCap is the maximum guesses per participant within a single
	// rate window. A fixed leaky counter: brief bursts up to the cap are
	// allowed, guesses past it are rejected locally.
	guessBurstCap = 5

	guessWindow = time.Second
)

type rateWindow struct {
	count int
	start time.Time
}

// allowGuess counts one guess attempt from the given participant and
// reports whether it is within the burst cap. The window resets whenever
// more than guessWindow has elapsed since its start.
func (r *Room) allowGuess(id string, now time.Time) bool {
	w := r.guessRate[id]
	if w == nil || now.Sub(w.start) > guessWindow {
		w = &rateWindow{start: now}
		r.guessRate[id] = w
	}

	w.count++

	return w.count <= guessBurstCap
}
