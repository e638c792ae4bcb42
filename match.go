/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"unicode"
)

// Guesses within this normalized edit distance of the term count as correct,
// tolerating minor misspellings while rejecting distant guesses.
const fuzzyMatchThreshold = 0.20

const redactedMarker = "[redacted]"

var profanityList = []string{
	"fuck", "shit", "bitch", "cunt", "asshole", "dick", "bastard", "slut", "whore",
}

// normalize lowercases s, strips everything outside [a-z0-9\s], collapses
// whitespace runs to single spaces, and trims. Idempotent.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// levenshtein returns the edit distance between a and b, with insertion,
// deletion, and substitution each costing 1.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// isMatch reports whether a guess counts as correct for a term: exact
// equality after normalization, equality against any normalized alias, or
// a normalized edit distance within fuzzyMatchThreshold of the term text.
func isMatch(guess string, term Term) bool {
	g := normalize(guess)
	t := normalize(term.Term)

	if g == "" {
		return false
	}
	if g == t {
		return true
	}
	for _, alias := range term.Aliases {
		if normalize(alias) == g {
			return true
		}
	}

	maxLen := max(len([]rune(g)), len([]rune(t)), 1)
	ratio := float64(levenshtein(g, t)) / float64(maxLen)

	return ratio <= fuzzyMatchThreshold
}

// sanitizeGuess replaces the guess wholesale with a redaction marker if it
// contains any profanity list entry. Redacted guesses are still shown in
// the guess stream but are never evaluated for a match.
func sanitizeGuess(text string) string {
	lower := strings.ToLower(text)
	for _, w := range profanityList {
		if strings.Contains(lower, w) {
			return redactedMarker
		}
	}
	return text
}
