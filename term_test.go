package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTerms() []Term {
	return []Term{
		{ID: "a", Term: "burden of proof", TopicTags: []string{"U3AOS1"}},
		{ID: "b", Term: "negligence", TopicTags: []string{"U3AOS2"}},
		{ID: "c", Term: "separation of powers", TopicTags: []string{"U4AOS1"}},
		{ID: "d", Term: "doctrine of precedent", TopicTags: []string{"U4AOS2"}},
	}
}

func TestExpandFilters(t *testing.T) {
	expanded := expandFilters([]string{"U3"})
	assert.True(t, expanded["U3"])
	assert.True(t, expanded["U3AOS1"])
	assert.True(t, expanded["U3AOS2"])
	assert.False(t, expanded["U4AOS1"])
}

func TestFilterPool(t *testing.T) {
	terms := testTerms()

	t.Run("no filters means full pool", func(t *testing.T) {
		assert.Len(t, filterPool(terms, nil), 4)
	})

	t.Run("unit tag broadens to sub-topics", func(t *testing.T) {
		pool := filterPool(terms, []string{"U3"})
		require.Len(t, pool, 2)
		assert.Equal(t, "a", pool[0].ID)
		assert.Equal(t, "b", pool[1].ID)
	})

	t.Run("specific sub-topic", func(t *testing.T) {
		pool := filterPool(terms, []string{"U4AOS2"})
		require.Len(t, pool, 1)
		assert.Equal(t, "d", pool[0].ID)
	})

	t.Run("unknown tag empties the pool", func(t *testing.T) {
		assert.Empty(t, filterPool(terms, []string{"U9"}))
	})
}

func TestSampleTerms(t *testing.T) {
	terms := testTerms()

	t.Run("samples without replacement", func(t *testing.T) {
		for n_ := 0; n_ < 50; n_++ {
			picked := sampleTerms(terms, 3)
			require.Len(t, picked, 3)

			seen := make(map[string]bool)
			for _, p := range picked {
				assert.False(t, seen[p.ID], "duplicate term %s", p.ID)
				seen[p.ID] = true
			}
		}
	})

	t.Run("small pool caps the sample", func(t *testing.T) {
		assert.Len(t, sampleTerms(terms[:2], 3), 2)
	})

	t.Run("does not mutate the pool", func(t *testing.T) {
		sampleTerms(terms, 3)
		assert.Equal(t, testTerms(), terms)
	})
}

func TestCleanTerms(t *testing.T) {
	uploads := []TermUpload{
		{ID: "x1", Term: " precedent ", TopicTags: []string{"U4AOS2"}},
		{Term: "negligence", TopicTags: []string{"U3AOS2"}, Aliases: []string{"", "duty of care"}},
		{Term: "", TopicTags: []string{"U3AOS1"}},     // empty text dropped
		{Term: "no tags"},                             // missing tags dropped
		{Term: "empty tags", TopicTags: []string{""}}, // blank tags dropped
	}

	cleaned := cleanTerms(uploads)
	require.Len(t, cleaned, 2)

	assert.Equal(t, "x1", cleaned[0].ID)
	assert.Equal(t, "precedent", cleaned[0].Term)

	assert.NotEmpty(t, cleaned[1].ID, "missing id should be generated")
	assert.Equal(t, []string{"duty of care"}, cleaned[1].Aliases)
}

func TestLoadBuiltinTerms(t *testing.T) {
	terms, err := loadTerms("")
	require.NoError(t, err)
	require.NotEmpty(t, terms)

	for _, term := range terms {
		assert.NotEmpty(t, term.ID)
		assert.NotEmpty(t, term.Term)
		assert.NotEmpty(t, term.TopicTags)
	}
}
