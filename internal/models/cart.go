package models

// CartLine is one cart entry. Item fields are denormalised at insertion time
// so the cart renders without re-joining to the catalog.
type CartLine struct {
	ItemID         string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url"`
	Veg            bool    `json:"veg"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Quantity       int     `json:"quantity"`
}

// CartItemPayload is the item-shaped input to an add-to-cart mutation.
type CartItemPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Veg      bool    `json:"veg"`
}

// CartState is the observable snapshot of the cart. ItemCount and Total are
// always recomputed from Lines; they carry no independent truth.
type CartState struct {
	Lines     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
	Loaded    bool       `json:"-"`
}
