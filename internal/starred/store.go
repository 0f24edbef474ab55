// Package starred persists the set of stories the user has starred.
package starred

import (
	"time"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// Store is the starred set. Implementations keep star order and never hold
// two entries with the same id.
type Store interface {
	// GetAll returns the starred items in the order they were starred.
	GetAll() ([]models.StarredItem, error)
	Contains(id int64) (bool, error)
	// Add stars item unless it is already starred.
	Add(item models.Item) error
	// Remove unstars id; absent ids are ignored.
	Remove(id int64) error
	// Toggle flips the starred state of item and returns the new state.
	Toggle(item models.Item) (bool, error)
}

// toggle implements Toggle on top of Contains, Add and Remove.
func toggle(s Store, item models.Item) (bool, error) {
	present, err := s.Contains(item.ID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.Remove(item.ID)
	}
	return true, s.Add(item)
}

// unique drops every entry whose id appeared earlier in items.
func unique(items []models.StarredItem) []models.StarredItem {
	seen := make(map[int64]struct{}, len(items))
	kept := items[:0:0]
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		kept = append(kept, item)
	}
	return kept
}

// IDs returns the set of ids in items.
func IDs(items []models.StarredItem) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(items))
	for _, s := range items {
		ids[s.ID] = struct{}{}
	}
	return ids
}

type clock func() time.Time

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
