package recommend

import (
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// keywordStarred gives golang=3, rust=2, python=1 and no author or domain
// overlap with the candidates below.
func keywordStarred() []models.StarredItem {
	return []models.StarredItem{
		{ID: 101, Title: "golang golang golang", By: "s1"},
		{ID: 102, Title: "rust rust", By: "s2"},
		{ID: 103, Title: "python", By: "s3"},
	}
}

func keywordCandidates() []models.Item {
	titles := []string{
		"golang",        // 6
		"rust",          // 4
		"golang",        // 6
		"python",        // 2
		"nothing here",  // 0
		"rust python",   // 6
		"golang rust",   // 10
		"zzz",           // 0
		"python python", // 4
		"misc",          // 0
	}
	items := make([]models.Item, len(titles))
	for i, title := range titles {
		items[i] = models.Item{ID: int64(i + 1), Title: title, By: "x"}
	}
	return items
}

func scoresOf(out []models.AnnotatedItem) []int {
	scores := make([]int, len(out))
	for i, a := range out {
		scores[i] = a.RecommendationScore
	}
	return scores
}

func recommendedIDs(out []models.AnnotatedItem) []int64 {
	var ids []int64
	for _, a := range out {
		if a.Recommended {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestClassifyTopThirdWithTies(t *testing.T) {
	out := Classify(keywordCandidates(), keywordStarred())

	require.Len(t, out, 10)
	assert.Equal(t, []int{6, 4, 6, 2, 0, 6, 10, 0, 4, 0}, scoresOf(out))
	// k = ceil(0.3*10) = 3, threshold 6; the fourth 6 ties rank 3.
	assert.Equal(t, []int64{1, 3, 6, 7}, recommendedIDs(out))
}

func TestClassifyPreservesOrder(t *testing.T) {
	candidates := keywordCandidates()
	slices.Reverse(candidates)

	out := Classify(candidates, keywordStarred())

	require.Len(t, out, len(candidates))
	for i := range candidates {
		assert.Equal(t, candidates[i], out[i].Item)
	}
}

func TestClassifyColdStart(t *testing.T) {
	starred := keywordStarred()[:2]

	out := Classify(keywordCandidates(), starred)

	require.Len(t, out, 10)
	for _, a := range out {
		assert.Zero(t, a.RecommendationScore)
		assert.False(t, a.Recommended)
	}
}

func TestClassifyNoStarred(t *testing.T) {
	out := Classify(keywordCandidates(), nil)
	assert.Empty(t, recommendedIDs(out))
}

func TestClassifyStarredNeverRecommended(t *testing.T) {
	starred := keywordStarred()
	candidates := append(keywordCandidates(), models.Item{ID: 101, Title: "golang golang golang", By: "s1"})

	out := Classify(candidates, starred)

	last := out[len(out)-1]
	assert.Equal(t, int64(101), last.ID)
	assert.Equal(t, 18+AuthorWeight, last.RecommendationScore)
	assert.False(t, last.Recommended)
	// the starred candidate is left out of the threshold population
	assert.Equal(t, []int64{1, 3, 6, 7}, recommendedIDs(out))
}

func TestClassifyAllCandidatesStarred(t *testing.T) {
	starred := keywordStarred()
	candidates := []models.Item{
		{ID: 101, Title: "golang golang golang", By: "s1"},
		{ID: 102, Title: "rust rust", By: "s2"},
	}

	out := Classify(candidates, starred)

	assert.Greater(t, out[0].RecommendationScore, 0)
	assert.Empty(t, recommendedIDs(out))
}

func TestClassifyZeroScoreNeverRecommended(t *testing.T) {
	starred := keywordStarred()
	candidates := []models.Item{{ID: 1, Title: "golang", By: "x"}}
	for i := 2; i <= 10; i++ {
		candidates = append(candidates, models.Item{ID: int64(i), Title: "unrelated", By: "x"})
	}

	out := Classify(candidates, starred)

	// threshold is 0 here; only the positive score qualifies
	assert.Equal(t, []int64{1}, recommendedIDs(out))
}

func TestClassifyAuthorOnlyMatch(t *testing.T) {
	starred := []models.StarredItem{
		{ID: 1, Title: "Alpha", By: "pg"},
		{ID: 2, Title: "Bravo", By: "tptacek"},
		{ID: 3, Title: "Charlie", By: "patio11"},
	}
	candidates := []models.Item{
		{ID: 10, Title: "Delta release", By: "pg"},
		{ID: 11, Title: "Echo", By: "someone"},
		{ID: 12, Title: "Foxtrot", By: "else"},
	}

	out := Classify(candidates, starred)

	assert.Equal(t, []int{5, 0, 0}, scoresOf(out))
	assert.Equal(t, []int64{10}, recommendedIDs(out))
}

func TestClassifyAuthorFrequencyScales(t *testing.T) {
	starred := []models.StarredItem{
		{ID: 1, Title: "Alpha", By: "pg"},
		{ID: 2, Title: "Bravo", By: "pg"},
		{ID: 3, Title: "Charlie", By: "pg"},
	}

	out := Classify([]models.Item{{ID: 10, Title: "Delta release", By: "pg"}}, starred)

	assert.Equal(t, 3*AuthorWeight, out[0].RecommendationScore)
	assert.True(t, out[0].Recommended)
}

func TestClassifyIdempotent(t *testing.T) {
	candidates := keywordCandidates()
	starred := keywordStarred()
	candidatesCopy := slices.Clone(candidates)
	starredCopy := slices.Clone(starred)

	first := Classify(candidates, starred)
	second := Classify(candidates, starred)

	assert.Equal(t, first, second)
	assert.Equal(t, candidatesCopy, candidates)
	assert.Equal(t, starredCopy, starred)
}

func TestClassifyKeywordMonotonic(t *testing.T) {
	starred := keywordStarred()
	candidates := keywordCandidates()

	before := Classify(candidates, starred)
	more := append(slices.Clone(starred), models.StarredItem{ID: 104, Title: "rust again", By: "s4"})
	after := Classify(candidates, more)

	for i, c := range candidates {
		assert.GreaterOrEqual(t, after[i].RecommendationScore, before[i].RecommendationScore, c.Title)
	}
	// "rust" went from 2 to 3 occurrences
	assert.Equal(t, 6, after[1].RecommendationScore)
}

func TestClassifyScoresNonNegative(t *testing.T) {
	for _, a := range Classify(keywordCandidates(), keywordStarred()) {
		assert.GreaterOrEqual(t, a.RecommendationScore, 0)
		if a.Recommended {
			assert.Positive(t, a.RecommendationScore)
		}
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"empty", nil, 0},
		{"single", []int{5}, 5},
		{"three picks top", []int{1, 9, 4}, 9},
		{"ten picks third", []int{0, 9, 4, 7, 7, 2, 7, 0, 1, 3}, 7},
		{"all zero", []int{0, 0, 0, 0}, 0},
		{"four picks second", []int{1, 2, 3, 4}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Threshold(tt.scores))
		})
	}
}

func TestThresholdDoesNotMutate(t *testing.T) {
	scores := []int{1, 3, 2}
	Threshold(scores)
	assert.Equal(t, []int{1, 3, 2}, scores)
}

type failingSnapshot struct{}

func (failingSnapshot) GetAll() ([]models.StarredItem, error) {
	return nil, errors.New("disk on fire")
}

type staticSnapshot []models.StarredItem

func (s staticSnapshot) GetAll() ([]models.StarredItem, error) {
	return s, nil
}

func TestEngineAnnotate(t *testing.T) {
	engine := NewEngine(staticSnapshot(keywordStarred()), zerolog.Nop())

	out := engine.Annotate(keywordCandidates())

	assert.Equal(t, []int64{1, 3, 6, 7}, recommendedIDs(out))
}

func TestEngineAnnotateStoreFailure(t *testing.T) {
	engine := NewEngine(failingSnapshot{}, zerolog.Nop())

	out := engine.Annotate(keywordCandidates())

	require.Len(t, out, 10)
	for _, a := range out {
		assert.Zero(t, a.RecommendationScore)
		assert.False(t, a.Recommended)
	}
}
