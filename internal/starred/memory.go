package starred

import (
	"slices"
	"sync"
	"time"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	items []models.StarredItem
	now   clock
}

// NewMemoryStore returns a store seeded with initial. Later duplicates of an
// id are dropped.
func NewMemoryStore(initial ...models.StarredItem) *MemoryStore {
	return &MemoryStore{now: time.Now, items: unique(initial)}
}

// GetAll returns a copy of the starred items
func (s *MemoryStore) GetAll() ([]models.StarredItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), nil
}

// Contains reports whether id is starred
func (s *MemoryStore) Contains(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0, nil
}

// Add appends item unless it is already starred
func (s *MemoryStore) Add(item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(item.ID) >= 0 {
		return nil
	}
	s.items = append(s.items, models.NewStarredItem(item, s.now()))
	return nil
}

// Remove drops id from the set
func (s *MemoryStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return nil
}

// Toggle stars or unstars item
func (s *MemoryStore) Toggle(item models.Item) (bool, error) {
	return toggle(s, item)
}

func (s *MemoryStore) index(id int64) int {
	return slices.IndexFunc(s.items, func(st models.StarredItem) bool { return st.ID == id })
}
