// Package app ties the feed source, the starred store and the recommender
// together for the TUI and the CLI.
package app

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/internal/feed"
	"github.com/thomaskoefod/hackerfeed/internal/present"
	"github.com/thomaskoefod/hackerfeed/internal/recommend"
	"github.com/thomaskoefod/hackerfeed/internal/starred"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// Reader holds the most recently loaded candidates and annotates them
// against the starred store.
type Reader struct {
	source feed.Source
	store  starred.Store
	engine *recommend.Engine
	limit  int
	log    zerolog.Logger

	mu         sync.Mutex
	candidates []models.Item
}

// NewReader creates a reader fetching up to limit items from source.
func NewReader(source feed.Source, store starred.Store, limit int, logger zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		store:  store,
		engine: recommend.NewEngine(store, logger),
		limit:  limit,
		log:    logger.With().Str("component", "reader").Logger(),
	}
}

// LoadFeed fetches a fresh batch and annotates it. On failure the loaded
// batch is cleared and nothing is scored.
func (r *Reader) LoadFeed(ctx context.Context) ([]models.AnnotatedItem, error) {
	items, err := r.source.Fetch(ctx, r.limit)
	if err != nil {
		r.mu.Lock()
		r.candidates = nil
		r.mu.Unlock()
		r.log.Error().Err(err).Msg("loading feed")
		return nil, err
	}

	r.mu.Lock()
	r.candidates = items
	r.mu.Unlock()

	r.log.Info().Int("items", len(items)).Msg("feed loaded")
	return r.engine.Annotate(items), nil
}

// Annotated re-classifies the loaded batch against the current store.
func (r *Reader) Annotated() []models.AnnotatedItem {
	r.mu.Lock()
	items := slices.Clone(r.candidates)
	r.mu.Unlock()
	return r.engine.Annotate(items)
}

// ToggleStar flips the starred state of item and re-annotates the loaded
// batch without fetching again.
func (r *Reader) ToggleStar(item models.Item) (bool, []models.AnnotatedItem, error) {
	on, err := r.store.Toggle(item)
	if err != nil {
		return false, nil, err
	}
	r.log.Debug().Int64("id", item.ID).Bool("starred", on).Msg("toggled star")
	return on, r.Annotated(), nil
}

// Star adds item to the starred set
func (r *Reader) Star(item models.Item) error {
	return r.store.Add(item)
}

// Unstar removes id from the starred set
func (r *Reader) Unstar(id int64) error {
	return r.store.Remove(id)
}

// IsStarred reports whether id is starred
func (r *Reader) IsStarred(id int64) (bool, error) {
	return r.store.Contains(id)
}

// Starred returns the starred set, newest first unless oldestFirst is set.
func (r *Reader) Starred(oldestFirst bool) ([]models.StarredItem, error) {
	items, err := r.store.GetAll()
	if err != nil {
		return nil, err
	}
	return present.SortStarred(items, oldestFirst), nil
}

// StarredCount returns the size of the starred set, or 0 if it cannot be read.
func (r *Reader) StarredCount() int {
	items, err := r.store.GetAll()
	if err != nil {
		r.log.Warn().Err(err).Msg("counting starred items")
		return 0
	}
	return len(items)
}

// Banner returns the personalization status line for an annotated batch.
func (r *Reader) Banner(annotated []models.AnnotatedItem) string {
	recommended := slices.ContainsFunc(annotated, func(a models.AnnotatedItem) bool { return a.Recommended })
	return present.Banner(r.StarredCount(), recommended, recommend.MinStarred)
}

// Explain breaks down the score of item against the current store.
func (r *Reader) Explain(item models.Item) recommend.Breakdown {
	items, err := r.store.GetAll()
	if err != nil {
		r.log.Warn().Err(err).Msg("reading starred items for explanation")
	}
	if len(items) < recommend.MinStarred {
		return recommend.Breakdown{}
	}
	return recommend.Explain(item, recommend.BuildProfile(items))
}
