package browse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shwikky/storefront/internal/models"
)

// Restaurant filter ids.
const (
	FilterFastDelivery = "fast-delivery"
	FilterRating4Plus  = "rating-4-plus"
	FilterPureVeg      = "pure-veg"
	FilterUnder300     = "price-under-300"
	Filter300To600     = "price-300-600"
	FilterOffers       = "offers"
	FilterNewArrivals  = "new-arrivals"
)

// Sort keys shared by restaurant and dish views.
const (
	SortRelevance    = "relevance"
	SortRating       = "rating"
	SortDeliveryTime = "delivery-time"
	SortCostLowHigh  = "cost-low-high"
	SortCostHighLow  = "cost-high-low"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
)

const fastDeliveryMaxMinutes = 25

// "offers" has no real promotional data behind it; a high rating stands in
// as the signal.
const offersMinRating = 4.2

// Engine applies filter sets and sort keys to catalog slices. It holds only
// the fixed id lists; all methods are pure with respect to their inputs.
type Engine struct {
	promoted    map[string]bool
	newArrivals map[string]bool
}

func NewEngine(promotedChainIDs, newArrivalIDs []string) *Engine {
	e := &Engine{
		promoted:    make(map[string]bool, len(promotedChainIDs)),
		newArrivals: make(map[string]bool, len(newArrivalIDs)),
	}
	for _, id := range promotedChainIDs {
		e.promoted[id] = true
	}
	for _, id := range newArrivalIDs {
		e.newArrivals[id] = true
	}
	return e
}

// Apply narrows the restaurant list with every active filter (AND
// composition), sorts the survivors, then demotes promoted chains to the
// end. The input slice is never mutated. Unknown filter ids are ignored.
func (e *Engine) Apply(restaurants []models.Restaurant, activeFilters []string, sortKey string) []models.Restaurant {
	filtered := make([]models.Restaurant, 0, len(restaurants))
	for i := range restaurants {
		if e.matchesAll(&restaurants[i], activeFilters) {
			filtered = append(filtered, restaurants[i])
		}
	}

	switch sortKey {
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	case SortDeliveryTime:
		sort.SliceStable(filtered, func(i, j int) bool {
			return deliveryLowerBound(filtered[i].DeliveryTime) < deliveryLowerBound(filtered[j].DeliveryTime)
		})
	case SortCostLowHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CostForTwo < filtered[j].CostForTwo
		})
	case SortCostHighLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CostForTwo > filtered[j].CostForTwo
		})
	default:
		// relevance keeps catalog order
	}

	return e.demotePromoted(filtered)
}

func (e *Engine) matchesAll(r *models.Restaurant, activeFilters []string) bool {
	for _, filter := range activeFilters {
		switch filter {
		case FilterFastDelivery:
			if deliveryLowerBound(r.DeliveryTime) > fastDeliveryMaxMinutes {
				return false
			}
		case FilterRating4Plus:
			if r.Rating < 4.0 {
				return false
			}
		case FilterPureVeg:
			if !r.HasVegItems() {
				return false
			}
		case FilterUnder300:
			if r.CostForTwo >= 300 {
				return false
			}
		case Filter300To600:
			if r.CostForTwo < 300 || r.CostForTwo > 600 {
				return false
			}
		case FilterOffers:
			if r.Rating < offersMinRating {
				return false
			}
		case FilterNewArrivals:
			if !e.newArrivals[r.ID] {
				return false
			}
		}
	}
	return true
}

// demotePromoted moves promoted-chain entries to the end, keeping relative
// order within both partitions. Deliberate placement, not a removal.
func (e *Engine) demotePromoted(restaurants []models.Restaurant) []models.Restaurant {
	if len(e.promoted) == 0 {
		return restaurants
	}
	rest := make([]models.Restaurant, 0, len(restaurants))
	var chains []models.Restaurant
	for i := range restaurants {
		if e.promoted[restaurants[i].ID] {
			chains = append(chains, restaurants[i])
		} else {
			rest = append(rest, restaurants[i])
		}
	}
	return append(rest, chains...)
}

// deliveryLowerBound parses the lower bound of a "25-30" style range.
// Unparseable strings sort last and never qualify as fast delivery.
func deliveryLowerBound(deliveryTime string) int {
	lower := deliveryTime
	if idx := strings.IndexByte(deliveryTime, '-'); idx >= 0 {
		lower = deliveryTime[:idx]
	}
	lower = strings.TrimSpace(lower)
	end := 0
	for end < len(lower) && lower[end] >= '0' && lower[end] <= '9' {
		end++
	}
	minutes, err := strconv.Atoi(lower[:end])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return minutes
}
