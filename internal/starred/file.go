package starred

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// FileStore keeps the starred set as a JSON array in a single file.
type FileStore struct {
	path string
	log  zerolog.Logger
	now  clock

	mu sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first write.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  logger.With().Str("component", "starred").Str("path", path).Logger(),
		now:  time.Now,
	}
}

// GetAll returns the starred items stored in the file
func (s *FileStore) GetAll() ([]models.StarredItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Contains reports whether id is starred
func (s *FileStore) Contains(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.load(), func(item models.StarredItem) bool { return item.ID == id }), nil
}

// Add appends item to the file unless it is already starred
func (s *FileStore) Add(item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if slices.ContainsFunc(items, func(st models.StarredItem) bool { return st.ID == item.ID }) {
		return nil
	}
	return s.save(append(items, models.NewStarredItem(item, s.now())))
}

// Remove rewrites the file without id
func (s *FileStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	kept := slices.DeleteFunc(slices.Clone(items), func(st models.StarredItem) bool { return st.ID == id })
	if len(kept) == len(items) {
		return nil
	}
	return s.save(kept)
}

// Toggle stars or unstars item
func (s *FileStore) Toggle(item models.Item) (bool, error) {
	return toggle(s, item)
}

// load reads the file. A missing or unreadable file is an empty set, and
// only the first entry for each id is kept.
func (s *FileStore) load() []models.StarredItem {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Msg("reading starred file, treating as empty")
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var items []models.StarredItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn().Err(err).Msg("corrupt starred file, treating as empty")
		return nil
	}
	return unique(items)
}

func (s *FileStore) save(items []models.StarredItem) error {
	if items == nil {
		items = []models.StarredItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling starred items: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating starred directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing starred file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing starred file: %w", err)
	}
	return nil
}
