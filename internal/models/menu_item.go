package models

type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	RatingCount  int     `json:"rating_count"`
	ImageURL     string  `json:"image_url"`
	Veg          bool    `json:"veg"`
	Customizable bool    `json:"customizable"`
	Bestseller   bool    `json:"bestseller"`
	Category     string  `json:"category"`
}

// MenuSection groups a restaurant's items under a category label for display.
type MenuSection struct {
	Category  string     `json:"category"`
	ItemCount int        `json:"item_count"`
	Items     []MenuItem `json:"items"`
}
