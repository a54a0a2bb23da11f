package catalog

import (
	"context"
	"errors"

	"github.com/shwikky/storefront/internal/models"
)

// ErrNotFound is returned when a restaurant id is absent from the catalog.
// Callers surface it as an empty state, never as a crash.
var ErrNotFound = errors.New("catalog: restaurant not found")

// Provider is the read-only catalog source. The production implementation is
// backed by Postgres; views treat whatever they receive as immutable for
// their lifetime.
type Provider interface {
	ListRestaurants(ctx context.Context, city string) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	SearchMenuItems(ctx context.Context, query string, limit int) ([]models.DishHit, error)
	SearchRestaurants(ctx context.Context, query string, limit int) ([]models.RestaurantHit, error)
}
