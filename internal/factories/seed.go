package factories

import (
	"math/rand"
	"strings"

	"github.com/shwikky/storefront/internal/models"
)

// Seeder builds a demo catalog: random restaurants plus the fixed chains the
// storefront pins (promoted ids and new arrivals), so every browse shelf has
// something to show.
type Seeder struct {
	config *models.Config
	rf     RestaurantFactory
	mf     MenuItemFactory
}

func NewSeeder(config *models.Config) *Seeder {
	return &Seeder{config: config}
}

func (s *Seeder) Generate() []*models.Restaurant {
	fixed := append([]string{}, s.config.PromotedChainIDs...)
	fixed = append(fixed, s.config.NewArrivalIDs...)

	restaurants := make([]*models.Restaurant, 0, s.config.SeedRestaurants+len(fixed))
	for _, id := range fixed {
		restaurants = append(restaurants, s.fixedRestaurant(id))
	}
	for i := 0; i < s.config.SeedRestaurants; i++ {
		restaurants = append(restaurants, s.rf.CreateRestaurant(s.config))
	}

	for _, r := range restaurants {
		count := s.config.SeedMinItems
		if spread := s.config.SeedMaxItems - s.config.SeedMinItems; spread > 0 {
			count += rand.Intn(spread + 1)
		}
		r.Menu = make([]models.MenuItem, 0, count)
		for i := 0; i < count; i++ {
			r.Menu = append(r.Menu, s.mf.CreateMenuItem(r))
		}
	}
	return restaurants
}

// fixedRestaurant keeps the configured id but fills everything else in.
func (s *Seeder) fixedRestaurant(id string) *models.Restaurant {
	r := s.rf.CreateRestaurant(s.config)
	r.ID = id
	r.Name = titleFromSlug(id)
	return r
}

func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
