package recommend

import "github.com/thomaskoefod/hackerfeed/pkg/models"

// Signal weights. An author match outweighs a domain match, which outweighs
// a single keyword match.
const (
	KeywordWeight = 2
	AuthorWeight  = 5
	DomainWeight  = 3
)

// Breakdown is the per-signal contribution to an item's score.
type Breakdown struct {
	Keyword int
	Author  int
	Domain  int

	// MatchedKeywords lists title tokens found in the profile, in title order.
	MatchedKeywords []string
}

// Total returns the combined score.
func (b Breakdown) Total() int {
	return b.Keyword + b.Author + b.Domain
}

// Score returns the relevance of item against p.
func Score(item models.Item, p Profile) int {
	return Explain(item, p).Total()
}

// Explain scores item against p and reports where the points came from.
func Explain(item models.Item, p Profile) Breakdown {
	var b Breakdown

	for _, kw := range Tokenize(item.Title) {
		if freq := p.Keywords[kw]; freq > 0 {
			b.Keyword += freq * KeywordWeight
			b.MatchedKeywords = append(b.MatchedKeywords, kw)
		}
	}

	b.Author = p.Authors[item.By] * AuthorWeight

	if item.URL != "" {
		if domain := models.Domain(item.URL); domain != "" {
			b.Domain = p.Domains[domain] * DomainWeight
		}
	}

	return b
}
