package factories

import (
	"math/rand"

	"github.com/shwikky/storefront/internal/models"
)

type MenuItemFactory struct{}

func (mf *MenuItemFactory) CreateMenuItem(restaurant *models.Restaurant) models.MenuItem {
	name, veg := generateRandomMenuItem(restaurant.Cuisines)
	return models.MenuItem{
		ID:           fake.UUID().V4(),
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  fake.Lorem().Sentence(10),
		Price:        float64(fake.IntBetween(8, 90)) * 5,
		Rating:       fake.Float64(1, 3, 5),
		RatingCount:  fake.IntBetween(0, 800),
		ImageURL:     fake.Internet().URL(),
		Veg:          veg,
		Customizable: fake.Bool(),
		Bestseller:   rand.Intn(5) == 0, // roughly one in five
		Category:     generateRandomCategory(),
	}
}

type dish struct {
	name string
	veg  bool
}

func generateRandomMenuItem(cuisines []string) (string, bool) {
	items := map[string][]dish{
		"Pizza":     {{"Margherita", true}, {"Pepperoni", false}, {"Veggie Supreme", true}, {"BBQ Chicken Pizza", false}},
		"Burgers":   {{"Classic Cheeseburger", false}, {"Veggie Burger", true}, {"BBQ Bacon Burger", false}, {"Mushroom Swiss Burger", true}},
		"Italian":   {{"Margherita Pizza", true}, {"Spaghetti Carbonara", false}, {"Lasagna", false}, {"Tiramisu", true}},
		"Indian":    {{"Chicken Tikka Masala", false}, {"Vegetable Curry", true}, {"Paneer Butter Masala", true}, {"Biryani", false}},
		"American":  {{"Cheeseburger", false}, {"Hot Dog", false}, {"BBQ Ribs", false}, {"Apple Pie", true}},
		"Japanese":  {{"Sushi Roll", false}, {"Ramen", false}, {"Tempura", false}, {"Miso Soup", true}},
		"Mexican":   {{"Tacos", false}, {"Burrito", false}, {"Guacamole", true}, {"Quesadilla", true}},
		"Chinese":   {{"Kung Pao Chicken", false}, {"Fried Rice", true}, {"Dumplings", false}, {"Mapo Tofu", true}},
		"Thai":      {{"Pad Thai", false}, {"Green Curry", false}, {"Tom Yum Soup", false}, {"Mango Sticky Rice", true}},
		"Ethiopian": {{"Doro Wat", false}, {"Shiro", true}, {"Tibs", false}, {"Injera Platter", true}},
		"Desserts":  {{"Chocolate Brownie", true}, {"Gulab Jamun", true}, {"Cheesecake", true}, {"Ice Cream Sundae", true}},
		"Beverages": {{"Cold Coffee", true}, {"Mango Lassi", true}, {"Fresh Lime Soda", true}, {"Masala Chai", true}},
	}
	cuisine := cuisines[rand.Intn(len(cuisines))]
	if dishes, ok := items[cuisine]; ok {
		d := dishes[rand.Intn(len(dishes))]
		return d.name, d.veg
	}
	return "Special of the Day", false
}

func generateRandomCategory() string {
	categories := []string{"Recommended", "Starters", "Main Course", "Sides", "Desserts", "Beverages"}
	return categories[rand.Intn(len(categories))]
}
