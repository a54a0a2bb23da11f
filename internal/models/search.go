package models

// SuggestionKind discriminates the variants of a search suggestion.
type SuggestionKind string

const (
	KindRestaurant SuggestionKind = "restaurant"
	KindDish       SuggestionKind = "dish"
	KindCategory   SuggestionKind = "category"
)

// RestaurantHit is a restaurant-typed search result.
type RestaurantHit struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Cuisines []string `json:"cuisines"`
	Rating   float64  `json:"rating"`
	Cost     int      `json:"cost"`
	ImageURL string   `json:"image_url"`
	Location string   `json:"location"`
}

// DishHit is a dish-typed search result.
type DishHit struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Veg              bool    `json:"veg"`
	ImageURL         string  `json:"image_url"`
	Rating           float64 `json:"rating"`
	RatingCount      int     `json:"rating_count"`
	Customizable     bool    `json:"customizable"`
	Bestseller       bool    `json:"bestseller"`
	RestaurantID     string  `json:"restaurant_id"`
	RestaurantName   string  `json:"restaurant_name"`
	RestaurantRating float64 `json:"restaurant_rating"`
}

// CategoryHit is a category-typed search result.
type CategoryHit struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// Suggestion is the tagged union over the three result kinds. Exactly one of
// Restaurant, Dish and Category is set, matching Kind.
type Suggestion struct {
	Kind       SuggestionKind `json:"kind"`
	Restaurant *RestaurantHit `json:"restaurant,omitempty"`
	Dish       *DishHit       `json:"dish,omitempty"`
	Category   *CategoryHit   `json:"category,omitempty"`
}

// Category is a curated catalog category ("Pizza", "Burgers", ...).
type Category struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// RestaurantGroup pairs a restaurant summary with the dish hits that matched
// under it.
type RestaurantGroup struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Rating float64   `json:"rating"`
	Dishes []DishHit `json:"dishes"`
}
