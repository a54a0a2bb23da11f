package search

import (
	"context"
	"sync/atomic"

	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/models"
)

// Result is the payload of one remote search, tagged with the query it was
// issued for.
type Result struct {
	Query       string
	Restaurants []models.RestaurantHit
	Dishes      []models.DishHit
}

// RemoteSearcher queries the catalog provider and enforces last-query-wins:
// each request carries the sequence number it was issued under, and a
// response arriving after a newer request has been issued is discarded.
// A failed fetch is returned as-is for the caller to surface; there is no
// retry and no timeout beyond what the context carries.
type RemoteSearcher struct {
	provider          catalog.Provider
	seq               atomic.Uint64
	maxRestaurantHits int
	maxDishHits       int
}

func NewRemoteSearcher(provider catalog.Provider, maxRestaurantHits, maxDishHits int) *RemoteSearcher {
	if maxRestaurantHits <= 0 {
		maxRestaurantHits = defaultMaxRestaurantHits
	}
	if maxDishHits <= 0 {
		maxDishHits = defaultMaxDishHits
	}
	return &RemoteSearcher{
		provider:          provider,
		maxRestaurantHits: maxRestaurantHits,
		maxDishHits:       maxDishHits,
	}
}

// Search runs the query against the provider. The second return value is
// false when the response is stale, meaning a newer Search was issued while
// this one was in flight; stale results must be ignored by the caller.
func (s *RemoteSearcher) Search(ctx context.Context, query string) (*Result, bool, error) {
	id := s.seq.Add(1)

	if query == "" {
		return &Result{Query: query}, s.seq.Load() == id, nil
	}

	restaurants, err := s.provider.SearchRestaurants(ctx, query, s.maxRestaurantHits)
	if err != nil {
		return nil, s.seq.Load() == id, err
	}
	dishes, err := s.provider.SearchMenuItems(ctx, query, s.maxDishHits)
	if err != nil {
		return nil, s.seq.Load() == id, err
	}

	if s.seq.Load() != id {
		return nil, false, nil
	}
	return &Result{Query: query, Restaurants: restaurants, Dishes: dishes}, true, nil
}
