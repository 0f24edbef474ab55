package recommend

import "github.com/thomaskoefod/hackerfeed/pkg/models"

// Profile holds the frequency tables derived from the starred set.
type Profile struct {
	Keywords map[string]int
	Authors  map[string]int
	Domains  map[string]int
}

// BuildProfile derives all three frequency tables from starred.
func BuildProfile(starred []models.StarredItem) Profile {
	return Profile{
		Keywords: BuildKeywordProfile(starred),
		Authors:  BuildAuthorProfile(starred),
		Domains:  BuildDomainProfile(starred),
	}
}

// BuildKeywordProfile counts every title token occurrence across starred.
func BuildKeywordProfile(starred []models.StarredItem) map[string]int {
	freq := make(map[string]int)
	for _, s := range starred {
		for _, kw := range Tokenize(s.Title) {
			freq[kw]++
		}
	}
	return freq
}

// BuildAuthorProfile counts starred items per author.
func BuildAuthorProfile(starred []models.StarredItem) map[string]int {
	freq := make(map[string]int)
	for _, s := range starred {
		freq[s.By]++
	}
	return freq
}

// BuildDomainProfile counts starred items per domain, skipping items
// without one.
func BuildDomainProfile(starred []models.StarredItem) map[string]int {
	freq := make(map[string]int)
	for _, s := range starred {
		if s.Domain == "" {
			continue
		}
		freq[s.Domain]++
	}
	return freq
}
