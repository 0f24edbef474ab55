package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomaskoefod/hackerfeed/internal/hn"
	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// ErrUnavailable wraps every failure to produce candidates.
var ErrUnavailable = errors.New("feed unavailable")

// Source supplies up to n items in the source's ranking order.
type Source interface {
	Fetch(ctx context.Context, n int) ([]models.Item, error)
}

// APISource reads a story list from the Hacker News API.
type APISource struct {
	client *hn.Client
	list   hn.List
}

// NewAPISource returns a source for one story list of client
func NewAPISource(client *hn.Client, list hn.List) *APISource {
	return &APISource{client: client, list: list}
}

// Fetch returns the first n stories of the list
func (s *APISource) Fetch(ctx context.Context, n int) ([]models.Item, error) {
	items, err := s.client.Stories(ctx, s.list, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return items, nil
}
