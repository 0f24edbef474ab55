package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/internal/config"
	"github.com/thomaskoefod/hackerfeed/internal/database"
	"github.com/thomaskoefod/hackerfeed/internal/feed"
	"github.com/thomaskoefod/hackerfeed/internal/hn"
	"github.com/thomaskoefod/hackerfeed/internal/starred"
)

// ErrOfflineUnsupported is returned when offline mode is requested without
// the sqlite backend, which holds the feed cache.
var ErrOfflineUnsupported = errors.New("offline mode requires the sqlite storage backend")

type Options struct {
	// Offline serves the cached feed snapshot instead of the network.
	Offline bool
}

// App is the set of collaborators built from a config.
type App struct {
	Config *config.Config
	Client *hn.Client
	Store  starred.Store
	Source feed.Source
	Reader *Reader

	db *database.DB
}

// Open builds the store, the feed source and the reader described by cfg.
func Open(cfg *config.Config, opts Options, logger zerolog.Logger) (*App, error) {
	timeout, err := cfg.Feed.GetTimeout()
	if err != nil {
		return nil, fmt.Errorf("parsing feed timeout: %w", err)
	}
	maxAge, err := cfg.Feed.GetCacheMaxAge()
	if err != nil {
		return nil, fmt.Errorf("parsing cache max age: %w", err)
	}

	a := &App{
		Config: cfg,
		Client: hn.NewClient(hn.Config{
			BaseURL:           cfg.Feed.APIBaseURL,
			Timeout:           timeout,
			Concurrency:       cfg.Feed.Concurrency,
			RequestsPerSecond: cfg.Feed.RequestsPerSecond,
		}),
	}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := database.New(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		a.db = db
		a.Store = starred.NewSQLStore(db)
	case config.BackendFile:
		a.Store = starred.NewFileStore(cfg.Storage.Path, logger)
	case config.BackendMemory:
		a.Store = starred.NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: storage.backend %q", config.ErrInvalid, cfg.Storage.Backend)
	}

	var src feed.Source
	switch cfg.Feed.Source {
	case config.SourceRSS:
		src = feed.NewRSSSource(cfg.Feed.RSSURL, timeout)
	default:
		src = feed.NewAPISource(a.Client, hn.List(cfg.Feed.List))
	}

	switch {
	case a.db != nil:
		cached := feed.NewCachedSource(src, a.db, maxAge, logger)
		src = cached
		if opts.Offline {
			src = cached.Offline()
		}
	case opts.Offline:
		a.Close()
		return nil, ErrOfflineUnsupported
	}

	a.Source = src
	a.Reader = NewReader(src, a.Store, cfg.Feed.Limit, logger)

	logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("source", cfg.Feed.Source).
		Bool("offline", opts.Offline).
		Msg("app opened")

	return a, nil
}

// Close releases the database, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
