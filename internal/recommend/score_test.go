package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

func sampleStarred() []models.StarredItem {
	return []models.StarredItem{
		{ID: 1, Title: "Rust compiler internals", By: "alice", URL: "https://github.com/a", Domain: "github.com"},
		{ID: 2, Title: "Writing a Rust compiler", By: "bob"},
		{ID: 3, Title: "Rust rust everywhere", By: "alice", URL: "https://www.github.com/b", Domain: "github.com"},
	}
}

func TestBuildProfile(t *testing.T) {
	p := BuildProfile(sampleStarred())

	assert.Equal(t, map[string]int{
		"rust":       4,
		"compiler":   2,
		"internals":  1,
		"writing":    1,
		"everywhere": 1,
	}, p.Keywords)
	assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, p.Authors)
	assert.Equal(t, map[string]int{"github.com": 2}, p.Domains)
}

func TestBuildProfileEmpty(t *testing.T) {
	p := BuildProfile(nil)
	assert.Empty(t, p.Keywords)
	assert.Empty(t, p.Authors)
	assert.Empty(t, p.Domains)
}

func TestExplain(t *testing.T) {
	p := BuildProfile(sampleStarred())
	item := models.Item{ID: 10, Title: "Rust compiler news", By: "alice", URL: "https://www.github.com/x"}

	b := Explain(item, p)

	assert.Equal(t, 12, b.Keyword)
	assert.Equal(t, 10, b.Author)
	assert.Equal(t, 6, b.Domain)
	assert.Equal(t, []string{"rust", "compiler"}, b.MatchedKeywords)
	assert.Equal(t, 28, b.Total())
	assert.Equal(t, 28, Score(item, p))
}

func TestScoreMissingEntries(t *testing.T) {
	p := BuildProfile(sampleStarred())
	item := models.Item{ID: 11, Title: "Gardening tips", By: "carol", URL: "https://example.org"}

	assert.Equal(t, 0, Score(item, p))
}

func TestScoreMalformedURL(t *testing.T) {
	p := BuildProfile(sampleStarred())
	item := models.Item{ID: 12, Title: "Misc", By: "bob", URL: "not a url"}

	b := Explain(item, p)
	require.Equal(t, 0, b.Domain)
	assert.Equal(t, AuthorWeight, b.Total())
}

func TestWeightOrdering(t *testing.T) {
	assert.Greater(t, AuthorWeight, DomainWeight)
	assert.Greater(t, DomainWeight, KeywordWeight)
}
