package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/models"
)

const defaultListLimit = 50

// Provider implements catalog.Provider on top of the pgx repositories.
type Provider struct {
	restaurants *RestaurantRepository
	menuItems   *MenuItemRepository
}

func NewProvider(pool *pgxpool.Pool) *Provider {
	return &Provider{
		restaurants: NewRestaurantRepository(pool),
		menuItems:   NewMenuItemRepository(pool),
	}
}

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func (p *Provider) ListRestaurants(ctx context.Context, city string) ([]models.Restaurant, error) {
	rows, err := p.restaurants.GetByCity(ctx, city, defaultListLimit, 0)
	if err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}

func (p *Provider) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, err := p.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	menu, err := p.menuItems.GetByRestaurantID(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.Menu = menu
	return restaurant, nil
}

func (p *Provider) SearchMenuItems(ctx context.Context, query string, limit int) ([]models.DishHit, error) {
	return p.menuItems.SearchByName(ctx, query, limit)
}

func (p *Provider) SearchRestaurants(ctx context.Context, query string, limit int) ([]models.RestaurantHit, error) {
	rows, err := p.restaurants.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]models.RestaurantHit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, models.RestaurantHit{
			ID:       r.ID,
			Name:     r.Name,
			Cuisines: r.Cuisines,
			Rating:   r.Rating,
			Cost:     r.CostForTwo,
			ImageURL: r.ImageURL,
			Location: r.Subcity + ", " + r.City,
		})
	}
	return hits, nil
}
