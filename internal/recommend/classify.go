package recommend

import (
	"cmp"
	"slices"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

const (
	// MinStarred is the number of starred items needed before anything is
	// recommended.
	MinStarred = 3

	// recommendedPercent is the share of unstarred candidates that sets the
	// score threshold.
	recommendedPercent = 30
)

// Classify scores candidates against the profile built from starred and flags
// the top share of unstarred candidates as recommended. The result has the
// same length and order as candidates.
func Classify(candidates []models.Item, starred []models.StarredItem) []models.AnnotatedItem {
	out := make([]models.AnnotatedItem, len(candidates))
	for i, item := range candidates {
		out[i] = models.AnnotatedItem{Item: item}
	}

	if len(starred) < MinStarred {
		return out
	}

	profile := BuildProfile(starred)
	starredIDs := make(map[int64]struct{}, len(starred))
	for _, s := range starred {
		starredIDs[s.ID] = struct{}{}
	}

	var unstarred []int
	for i := range out {
		out[i].RecommendationScore = Score(out[i].Item, profile)
		if _, ok := starredIDs[out[i].ID]; !ok {
			unstarred = append(unstarred, out[i].RecommendationScore)
		}
	}

	threshold := Threshold(unstarred)
	for i := range out {
		if _, ok := starredIDs[out[i].ID]; ok {
			continue
		}
		score := out[i].RecommendationScore
		out[i].Recommended = score > 0 && score >= threshold
	}

	return out
}

// Threshold returns the score at rank ceil(30% of len(scores)) when scores
// are ordered highest first, or 0 for an empty slice.
func Threshold(scores []int) int {
	if len(scores) == 0 {
		return 0
	}

	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return cmp.Compare(b, a)
	})

	k := (len(sorted)*recommendedPercent + 99) / 100
	return sorted[k-1]
}
