package search

import (
	"strings"

	"github.com/shwikky/storefront/internal/models"
)

const (
	defaultMaxRestaurantHits = 10
	defaultMaxDishHits       = 20
)

// Matcher runs free-text queries against an in-memory catalog snapshot. It
// is a pure function of its inputs; matching is case-insensitive substring
// containment, not fuzzy and not tokenised.
type Matcher struct {
	maxRestaurantHits int
	maxDishHits       int
}

func NewMatcher(maxRestaurantHits, maxDishHits int) *Matcher {
	if maxRestaurantHits <= 0 {
		maxRestaurantHits = defaultMaxRestaurantHits
	}
	if maxDishHits <= 0 {
		maxDishHits = defaultMaxDishHits
	}
	return &Matcher{maxRestaurantHits: maxRestaurantHits, maxDishHits: maxDishHits}
}

// Match returns typed suggestions for a non-empty query: restaurants matched
// on name or cuisine, dishes on name or owning-restaurant name, categories on
// label or description. Hit caps apply per kind, before any grouping. An
// empty query yields no results; curated placeholder lists are the caller's
// concern.
func (m *Matcher) Match(query string, restaurants []models.Restaurant, categories []models.Category) []models.Suggestion {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var out []models.Suggestion

	restaurantHits := 0
	for i := range restaurants {
		if restaurantHits >= m.maxRestaurantHits {
			break
		}
		r := &restaurants[i]
		if !containsFold(r.Name, needle) && !anyContainsFold(r.Cuisines, needle) {
			continue
		}
		out = append(out, models.Suggestion{
			Kind: models.KindRestaurant,
			Restaurant: &models.RestaurantHit{
				ID:       r.ID,
				Name:     r.Name,
				Cuisines: r.Cuisines,
				Rating:   r.Rating,
				Cost:     r.CostForTwo,
				ImageURL: r.ImageURL,
				Location: r.Subcity + ", " + r.City,
			},
		})
		restaurantHits++
	}

	dishHits := 0
	for i := range restaurants {
		if dishHits >= m.maxDishHits {
			break
		}
		r := &restaurants[i]
		for j := range r.Menu {
			if dishHits >= m.maxDishHits {
				break
			}
			item := &r.Menu[j]
			if !containsFold(item.Name, needle) && !containsFold(r.Name, needle) {
				continue
			}
			out = append(out, models.Suggestion{
				Kind: models.KindDish,
				Dish: &models.DishHit{
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
				},
			})
			dishHits++
		}
	}

	for i := range categories {
		c := &categories[i]
		if !containsFold(c.Label, needle) && !containsFold(c.Description, needle) {
			continue
		}
		out = append(out, models.Suggestion{
			Kind: models.KindCategory,
			Category: &models.CategoryHit{
				Label:       c.Label,
				Description: c.Description,
				Slug:        c.Slug,
			},
		})
	}

	return out
}

// GroupDishes buckets dish hits by owning restaurant, in first-appearance
// order of the restaurant id.
func GroupDishes(dishes []models.DishHit) []models.RestaurantGroup {
	index := make(map[string]int, len(dishes))
	groups := make([]models.RestaurantGroup, 0, len(dishes))
	for _, dish := range dishes {
		i, ok := index[dish.RestaurantID]
		if !ok {
			i = len(groups)
			index[dish.RestaurantID] = i
			groups = append(groups, models.RestaurantGroup{
				ID:     dish.RestaurantID,
				Name:   dish.RestaurantName,
				Rating: dish.RestaurantRating,
			})
		}
		groups[i].Dishes = append(groups[i].Dishes, dish)
	}
	return groups
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func anyContainsFold(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if containsFold(h, needle) {
			return true
		}
	}
	return false
}
