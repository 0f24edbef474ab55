package starred

import (
	"time"

	"github.com/thomaskoefod/hackerfeed/internal/database"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// SQLStore keeps the starred set in the sqlite database.
type SQLStore struct {
	db  *database.DB
	now clock
}

// NewSQLStore returns a store on the starred table of db
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// GetAll returns the starred rows oldest first
func (s *SQLStore) GetAll() ([]models.StarredItem, error) {
	return s.db.GetStarred()
}

// Contains reports whether id is starred
func (s *SQLStore) Contains(id int64) (bool, error) {
	return s.db.IsStarred(id)
}

// Add relies on the unique id column, so an existing star keeps its time.
func (s *SQLStore) Add(item models.Item) error {
	_, err := s.db.InsertStarred(models.NewStarredItem(item, s.now()))
	return err
}

// Remove deletes the row for id
func (s *SQLStore) Remove(id int64) error {
	return s.db.DeleteStarred(id)
}

// Toggle stars or unstars item
func (s *SQLStore) Toggle(item models.Item) (bool, error) {
	return toggle(s, item)
}
