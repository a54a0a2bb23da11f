package models

type Restaurant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Rating       float64    `json:"rating"`
	RatingCount  int        `json:"rating_count"`
	CostForTwo   int        `json:"cost_for_two"`
	Cuisines     []string   `json:"cuisines"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	Subcity      string     `json:"subcity"`
	DeliveryTime string     `json:"delivery_time"` // range string, e.g. "25-30"
	ImageURL     string     `json:"image_url"`
	LicenseNo    string     `json:"license_no"`
	Menu         []MenuItem `json:"menu"`
}

// HasVegItems reports whether at least one menu item is vegetarian.
func (r *Restaurant) HasVegItems() bool {
	for i := range r.Menu {
		if r.Menu[i].Veg {
			return true
		}
	}
	return false
}
