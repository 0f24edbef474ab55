package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/internal/database"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// CachedSource records every successful fetch of the wrapped source so the
// last snapshot can be shown offline.
type CachedSource struct {
	src    Source
	db     *database.DB
	maxAge time.Duration
	log    zerolog.Logger
}

// NewCachedSource wraps src, keeping its last result in db for up to maxAge
func NewCachedSource(src Source, db *database.DB, maxAge time.Duration, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		src:    src,
		db:     db,
		maxAge: maxAge,
		log:    logger.With().Str("component", "feed_cache").Logger(),
	}
}

// Fetch reads from the wrapped source and replaces the cached snapshot. A
// failed cache write is logged, not returned.
func (c *CachedSource) Fetch(ctx context.Context, n int) ([]models.Item, error) {
	items, err := c.src.Fetch(ctx, n)
	if err != nil {
		return nil, err
	}

	if err := c.db.ReplaceItems(items, time.Now()); err != nil {
		c.log.Warn().Err(err).Int("items", len(items)).Msg("caching feed snapshot")
	}
	return items, nil
}

// Offline returns a Source that serves the cached snapshot.
func (c *CachedSource) Offline() Source {
	return offlineSource{c}
}

type offlineSource struct {
	c *CachedSource
}

func (o offlineSource) Fetch(_ context.Context, n int) ([]models.Item, error) {
	items, err := o.c.db.GetCachedItems(o.c.maxAge)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no cached snapshot newer than %s", ErrUnavailable, o.c.maxAge)
	}
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}
