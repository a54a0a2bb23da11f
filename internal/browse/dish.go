package browse

import (
	"sort"

	"github.com/shwikky/storefront/internal/models"
)

// Dish filter ids, used on the search catalog view.
const (
	DishFilterVeg          = "veg"
	DishFilterNonVeg       = "non-veg"
	DishFilterBestseller   = "bestseller"
	DishFilterCustomizable = "customizable"
	DishFilterUnder200     = "under-200"
	DishFilter200To400     = "200-400"
)

// ApplyDishes is the dish-level counterpart of Apply: AND composition,
// unknown ids ignored, stable sort, input untouched. Dishes have no promoted
// demotion.
func (e *Engine) ApplyDishes(dishes []models.DishHit, activeFilters []string, sortKey string) []models.DishHit {
	filtered := make([]models.DishHit, 0, len(dishes))
	for i := range dishes {
		if dishMatchesAll(&dishes[i], activeFilters) {
			filtered = append(filtered, dishes[i])
		}
	}

	switch sortKey {
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	case SortPriceLowHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	default:
		// relevance keeps match order
	}
	return filtered
}

func dishMatchesAll(d *models.DishHit, activeFilters []string) bool {
	for _, filter := range activeFilters {
		switch filter {
		case DishFilterVeg:
			if !d.Veg {
				return false
			}
		case DishFilterNonVeg:
			if d.Veg {
				return false
			}
		case DishFilterBestseller:
			if !d.Bestseller {
				return false
			}
		case DishFilterCustomizable:
			if !d.Customizable {
				return false
			}
		case DishFilterUnder200:
			if d.Price >= 200 {
				return false
			}
		case DishFilter200To400:
			if d.Price < 200 || d.Price > 400 {
				return false
			}
		}
	}
	return true
}
