/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Term is one drawable entry in a room's pool. Immutable once loaded;
// a room's pool is only ever replaced wholesale by the teacher.
type Term struct {
	ID        string   `json:"id"`
	Term      string   `json:"term"`
	Aliases   []string `json:"aliases,omitempty"`
	TopicTags []string `json:"topicTags"`
}

// TermUpload is a term-like record from a teacher upload, validated and
// cleaned before replacing a room's pool.
type TermUpload struct {
	ID        string   `json:"id,omitempty"`
	Term      string   `json:"term"`
	Aliases   []string `json:"aliases,omitempty"`
	TopicTags []string `json:"topicTags"`
}

const termOptionCount = 3

// Coarse unit tags broaden to their areas of study when filtering.
var unitTopics = map[string][]string{
	"U3": {"U3AOS1", "U3AOS2"},
	"U4": {"U4AOS1", "U4AOS2"},
}

//go:embed terms.json
var builtinTermsJSON []byte

// loadTerms returns the default term pool: the file at path if given,
// otherwise the built-in list.
func loadTerms(path string) ([]Term, error) {
	data := builtinTermsJSON

	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading term list: %w", err)
		}
	}

	var terms []Term
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("parsing term list: %w", err)
	}

	return terms, nil
}

// expandFilters returns the set of tags a filter selection covers,
// broadening coarse unit tags to include their sub-topics.
func expandFilters(filters []string) map[string]bool {
	expanded := make(map[string]bool, len(filters))
	for _, f := range filters {
		expanded[f] = true
		for _, sub := range unitTopics[f] {
			expanded[sub] = true
		}
	}
	return expanded
}

// filterPool returns the terms carrying at least one tag in the expanded
// filter set. With no filters, the full pool applies.
func filterPool(terms []Term, filters []string) []Term {
	if len(filters) == 0 {
		return terms
	}

	expanded := expandFilters(filters)

	pool := make([]Term, 0, len(terms))
	for _, t := range terms {
		for _, tag := range t.TopicTags {
			if expanded[tag] {
				pool = append(pool, t)
				break
			}
		}
	}
	return pool
}

// sampleTerms picks up to n terms uniformly at random, without replacement.
func sampleTerms(pool []Term, n int) []Term {
	remaining := make([]Term, len(pool))
	copy(remaining, pool)

	if n > len(remaining) {
		n = len(remaining)
	}

	out := make([]Term, 0, n)
	for j := 0; j < n; j++ {
		i := randIndex(len(remaining))
		out = append(out, remaining[i])
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return out
}

func findTerm(terms []Term, id string) *Term {
	if id == "" {
		return nil
	}
	for i := range terms {
		if terms[i].ID == id {
			return &terms[i]
		}
	}
	return nil
}

// cleanTerms validates uploaded term records: term text must be non-empty
// and at least one topic tag present; records failing either are dropped.
// Missing ids are generated.
func cleanTerms(uploads []TermUpload) []Term {
	cleaned := make([]Term, 0, len(uploads))

	for _, u := range uploads {
		text := strings.TrimSpace(u.Term)

		tags := make([]string, 0, len(u.TopicTags))
		for _, tag := range u.TopicTags {
			if tag != "" {
				tags = append(tags, tag)
			}
		}

		if text == "" || len(tags) == 0 {
			continue
		}

		aliases := make([]string, 0, len(u.Aliases))
		for _, a := range u.Aliases {
			if a != "" {
				aliases = append(aliases, a)
			}
		}

		id := u.ID
		if id == "" {
			id = uuid.NewString()
		}

		cleaned = append(cleaned, Term{
			ID:        id,
			Term:      text,
			Aliases:   aliases,
			TopicTags: tags,
		})
	}

	return cleaned
}
