package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
	"github.com/shwikky/storefront/internal/search"
)

type addItemRequest struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	ImageURL       string  `json:"image_url"`
	Veg            bool    `json:"veg"`
	RestaurantID   string  `json:"restaurant_id" validate:"required"`
	RestaurantName string  `json:"restaurant_name"`
}

// Quantity is a pointer so an explicit zero (remove the line) survives binding.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type setCityRequest struct {
	City string `json:"city" validate:"required"`
}

func (s *Server) listRestaurants(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		city = s.selectedCity()
	}

	restaurants, err := s.provider.ListRestaurants(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var filters []string
	if raw := c.Query("filters"); raw != "" {
		filters = strings.Split(raw, ",")
	}
	sortKey := c.DefaultQuery("sort", "relevance")

	result := s.browser.Apply(restaurants, filters, sortKey)
	result = paginate(result, c.Query("offset"), c.Query("limit"))
	c.JSON(http.StatusOK, result)
}

// paginate applies offset/limit after filtering and sorting. Bad or missing
// values leave the slice untouched.
func paginate(restaurants []models.Restaurant, offsetParam, limitParam string) []models.Restaurant {
	if offset, err := strconv.Atoi(offsetParam); err == nil && offset > 0 {
		if offset >= len(restaurants) {
			return []models.Restaurant{}
		}
		restaurants = restaurants[offset:]
	}
	if limit, err := strconv.Atoi(limitParam); err == nil && limit > 0 && limit < len(restaurants) {
		restaurants = restaurants[:limit]
	}
	return restaurants
}

func (s *Server) getRestaurant(c *gin.Context) {
	restaurant, err := s.provider.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            restaurant.ID,
		"name":          restaurant.Name,
		"rating":        restaurant.Rating,
		"rating_count":  restaurant.RatingCount,
		"cost_for_two":  restaurant.CostForTwo,
		"cuisines":      restaurant.Cuisines,
		"address":       restaurant.Address,
		"city":          restaurant.City,
		"subcity":       restaurant.Subcity,
		"delivery_time": restaurant.DeliveryTime,
		"image_url":     restaurant.ImageURL,
		"menu":          groupMenu(restaurant.Menu),
	})
}

// selectedCity reads the persisted city choice, falling back to the
// configured default.
func (s *Server) selectedCity() string {
	data, err := s.storage.Get(models.StorageKeySelectedCity)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("city: failed to read selection: %v", err)
		}
		return s.config.DefaultCity
	}
	var city string
	if err := json.Unmarshal(data, &city); err != nil || city == "" {
		return s.config.DefaultCity
	}
	return city
}

func (s *Server) getCity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"city": s.selectedCity()})
}

func (s *Server) setCity(c *gin.Context) {
	var req setCityRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return
	}

	data, err := json.Marshal(req.City)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.storage.Set(models.StorageKeySelectedCity, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": req.City})
}

// groupMenu buckets items under their category label in first-appearance
// order. Items without a category land under "All Items".
func groupMenu(items []models.MenuItem) []models.MenuSection {
	index := make(map[string]int)
	sections := make([]models.MenuSection, 0)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "All Items"
		}
		i, ok := index[category]
		if !ok {
			i = len(sections)
			index[category] = i
			sections = append(sections, models.MenuSection{Category: category})
		}
		sections[i].Items = append(sections[i].Items, item)
		sections[i].ItemCount++
	}
	return sections
}

func (s *Server) searchCatalog(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	kind := c.Query("type") // restaurant, dish or empty for both

	if query == "" {
		c.JSON(http.StatusOK, gin.H{"query": "", "restaurants": []models.RestaurantHit{}, "dish_groups": []models.RestaurantGroup{}})
		return
	}

	result, fresh, err := s.searcher.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !fresh {
		c.JSON(http.StatusOK, gin.H{"stale": true})
		return
	}

	s.recent.Record(query)
	s.publishSearchEvent(query, len(result.Restaurants), len(result.Dishes))

	restaurants := result.Restaurants
	dishes := result.Dishes
	if kind == "dish" {
		restaurants = nil
	}
	if kind == "restaurant" {
		dishes = nil
	}
	if restaurants == nil {
		restaurants = []models.RestaurantHit{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       result.Query,
		"restaurants": restaurants,
		"dish_groups": search.GroupDishes(dishes),
	})
}

// publishSearchEvent is best effort; a failed publish never fails the search.
func (s *Server) publishSearchEvent(query string, restaurantHits, dishHits int) {
	if s.sink == nil {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"query":           query,
		"restaurant_hits": restaurantHits,
		"dish_hits":       dishHits,
		"timestamp":       time.Now().Unix(),
	})
	if err != nil {
		return
	}
	if err := s.sink.WriteMessage(models.TopicSearchEvents, msg); err != nil {
		log.Printf("search: failed to publish search event: %v", err)
	}
}

func (s *Server) suggest(c *gin.Context) {
	query := c.Query("q")

	restaurants, err := s.provider.ListRestaurants(c.Request.Context(), s.selectedCity())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	matcher := search.NewMatcher(s.config.MaxRestaurantHits, s.config.MaxDishHits)
	suggestions := matcher.Match(query, restaurants, s.categories)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) recentSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"searches": s.recent.List()})
}

func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cart.State())
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return
	}

	s.cart.Add(models.CartItemPayload{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Veg:      req.Veg,
	}, req.RestaurantID, req.RestaurantName)

	c.JSON(http.StatusOK, s.cart.State())
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return
	}

	s.cart.SetQuantity(c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, s.cart.State())
}

func (s *Server) removeCartItem(c *gin.Context) {
	s.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, s.cart.State())
}

func (s *Server) clearCart(c *gin.Context) {
	s.cart.Clear()
	c.JSON(http.StatusOK, s.cart.State())
}

// bindAndValidate binds the JSON body and runs validation, writing a 400 on
// failure so handlers can just return.
func (s *Server) bindAndValidate(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
		return err
	}
	if err := s.validate.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "fields": validationErrorsToMap(err)})
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
