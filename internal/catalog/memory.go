package catalog

import (
	"context"
	"strings"

	"github.com/shwikky/storefront/internal/models"
)

// MemoryProvider serves a fixed catalog from process memory. It backs local
// development (seeded data) and tests.
type MemoryProvider struct {
	restaurants []models.Restaurant
}

func NewMemoryProvider(restaurants []models.Restaurant) *MemoryProvider {
	return &MemoryProvider{restaurants: restaurants}
}

func (m *MemoryProvider) ListRestaurants(ctx context.Context, city string) ([]models.Restaurant, error) {
	if city == "" {
		out := make([]models.Restaurant, len(m.restaurants))
		copy(out, m.restaurants)
		return out, nil
	}
	var out []models.Restaurant
	for i := range m.restaurants {
		if strings.EqualFold(m.restaurants[i].City, city) {
			out = append(out, m.restaurants[i])
		}
	}
	return out, nil
}

func (m *MemoryProvider) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			r := m.restaurants[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryProvider) SearchMenuItems(ctx context.Context, query string, limit int) ([]models.DishHit, error) {
	needle := strings.ToLower(query)
	var out []models.DishHit
	for i := range m.restaurants {
		r := &m.restaurants[i]
		for j := range r.Menu {
			item := &r.Menu[j]
			if !strings.Contains(strings.ToLower(item.Name), needle) {
				continue
			}
			out = append(out, models.DishHit{
				ID:               item.ID,
				Name:             item.Name,
				Description:      item.Description,
				Price:            item.Price,
				Veg:              item.Veg,
				ImageURL:         item.ImageURL,
				Rating:           item.Rating,
				RatingCount:      item.RatingCount,
				Customizable:     item.Customizable,
				Bestseller:       item.Bestseller,
				RestaurantID:     r.ID,
				RestaurantName:   r.Name,
				RestaurantRating: r.Rating,
			})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (m *MemoryProvider) SearchRestaurants(ctx context.Context, query string, limit int) ([]models.RestaurantHit, error) {
	needle := strings.ToLower(query)
	var out []models.RestaurantHit
	for i := range m.restaurants {
		r := &m.restaurants[i]
		if !matchesRestaurant(r, needle) {
			continue
		}
		out = append(out, models.RestaurantHit{
			ID:       r.ID,
			Name:     r.Name,
			Cuisines: r.Cuisines,
			Rating:   r.Rating,
			Cost:     r.CostForTwo,
			ImageURL: r.ImageURL,
			Location: r.Subcity + ", " + r.City,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func matchesRestaurant(r *models.Restaurant, needle string) bool {
	if strings.Contains(strings.ToLower(r.Name), needle) {
		return true
	}
	for _, cuisine := range r.Cuisines {
		if strings.Contains(strings.ToLower(cuisine), needle) {
			return true
		}
	}
	return false
}
