package factories

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shwikky/storefront/internal/models"
)

var fake = faker.New()

type RestaurantFactory struct {
	slugCache sync.Map // to track used slugs
}

func (rf *RestaurantFactory) CreateRestaurant(config *models.Config) *models.Restaurant {
	name := fake.Company().Name()
	lower := 15 + rand.Intn(6)*5

	return &models.Restaurant{
		ID:           rf.createUniqueSlug(name),
		Name:         name,
		Rating:       fake.Float64(1, 1, 5),
		RatingCount:  fake.IntBetween(10, 5000),
		CostForTwo:   fake.IntBetween(3, 16) * 50,
		Cuisines:     generateRandomCuisines(),
		Address:      fake.Address().StreetAddress(),
		City:         config.DefaultCity,
		Subcity:      fake.Address().City(),
		DeliveryTime: fmt.Sprintf("%d-%d", lower, lower+5),
		ImageURL:     fake.Internet().URL(),
		LicenseNo:    strings.ToUpper(cuid.Slug()),
	}
}

// createUniqueSlug doubles as the restaurant id so seeded catalogs get the
// readable ids the storefront links by.
func (rf *RestaurantFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)

	slug := base
	counter := 1

	for {
		if _, exists := rf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func generateRandomCuisines() []string {
	allCuisines := []string{"Italian", "Cafe", "Indian", "American", "Japanese", "Mexican", "Chinese", "Thai", "Greek", "French", "Mediterranean", "Fast Food", "Street Food", "Ethiopian", "Burgers", "Pizza", "Desserts", "Beverages"}
	cuisineCount := rand.Intn(3) + 1 // 1 to 3 cuisines
	cuisines := make([]string, cuisineCount)
	for i := 0; i < cuisineCount; i++ {
		cuisines[i] = allCuisines[rand.Intn(len(allCuisines))]
	}
	return cuisines
}
