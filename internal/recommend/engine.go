package recommend

import (
	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// Snapshotter supplies the current starred set.
type Snapshotter interface {
	GetAll() ([]models.StarredItem, error)
}

// Engine classifies candidates against a live starred store.
type Engine struct {
	starred Snapshotter
	log     zerolog.Logger
}

// NewEngine creates an engine reading its profile from starred.
func NewEngine(starred Snapshotter, logger zerolog.Logger) *Engine {
	return &Engine{
		starred: starred,
		log:     logger.With().Str("component", "recommend").Logger(),
	}
}

// Annotate classifies candidates against the store's current contents.
// A store read failure is treated as an empty starred set.
func (e *Engine) Annotate(candidates []models.Item) []models.AnnotatedItem {
	starred, err := e.starred.GetAll()
	if err != nil {
		e.log.Warn().Err(err).Msg("reading starred items, scoring without profile")
		starred = nil
	}

	out := Classify(candidates, starred)

	recommended := 0
	for _, a := range out {
		if a.Recommended {
			recommended++
		}
	}
	e.log.Debug().
		Int("candidates", len(candidates)).
		Int("starred", len(starred)).
		Int("recommended", recommended).
		Msg("classified feed")

	return out
}
