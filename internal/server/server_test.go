package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shwikky/storefront/internal/cart"
	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
	"github.com/shwikky/storefront/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Restaurant {
	return []models.Restaurant{
		{
			ID: "spice-villa", Name: "Spice Villa", Rating: 4.5, CostForTwo: 400,
			Cuisines: []string{"North Indian"}, City: "Vellore", Subcity: "Katpadi",
			DeliveryTime: "20-25",
			Menu: []models.MenuItem{
				{ID: "m1", RestaurantID: "spice-villa", Name: "Paneer Tikka", Price: 220, Veg: true, Category: "Starters"},
				{ID: "m2", RestaurantID: "spice-villa", Name: "Butter Chicken", Price: 320, Category: "Main Course"},
			},
		},
		{
			ID: "burger-king", Name: "Burger King", Rating: 4.1, CostForTwo: 300,
			Cuisines: []string{"Burgers"}, City: "Vellore", Subcity: "Gandhi Nagar",
			DeliveryTime: "30-35",
			Menu: []models.MenuItem{
				{ID: "m3", RestaurantID: "burger-king", Name: "Whopper", Price: 180},
			},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &models.Config{
		DefaultCity:       "Vellore",
		MaxRestaurantHits: 10,
		MaxDishHits:       20,
		MaxRecentSearches: 5,
		PromotedChainIDs:  []string{"burger-king"},
	}
	provider := catalog.NewMemoryProvider(testCatalog())
	storage := kv.NewMemoryStore()
	cartStore := cart.NewStore(storage)
	cartStore.Load()
	recent := search.NewRecentSearches(storage, cfg.MaxRecentSearches)

	return New(cfg, provider, cartStore, recent, storage)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListRestaurantsDemotesPromotedChains(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/restaurants?sort=rating", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restaurants []models.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	require.Len(t, restaurants, 2)
	assert.Equal(t, "spice-villa", restaurants[0].ID)
	assert.Equal(t, "burger-king", restaurants[1].ID, "promoted chain should be last")
}

func TestListRestaurantsAppliesFilters(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/restaurants?filters=fast-delivery,rating-4-plus", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restaurants []models.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	require.Len(t, restaurants, 1)
	assert.Equal(t, "spice-villa", restaurants[0].ID)
}

func TestListRestaurantsPaginates(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/restaurants?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restaurants []models.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	require.Len(t, restaurants, 1)
	assert.Equal(t, "spice-villa", restaurants[0].ID)

	w = doRequest(t, router, http.MethodGet, "/api/restaurants?offset=1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	require.Len(t, restaurants, 1)
	assert.Equal(t, "burger-king", restaurants[0].ID)

	w = doRequest(t, router, http.MethodGet, "/api/restaurants?offset=99", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	assert.Empty(t, restaurants)
}

func TestGetRestaurantGroupsMenu(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/restaurants/spice-villa", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name string               `json:"name"`
		Menu []models.MenuSection `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Spice Villa", resp.Name)
	require.Len(t, resp.Menu, 2)
	assert.Equal(t, "Starters", resp.Menu[0].Category)
	assert.Equal(t, 1, resp.Menu[0].ItemCount)
}

func TestGetRestaurantNotFound(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/restaurants/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchGroupsDishesByRestaurant(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/search?q=paneer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Query      string                   `json:"query"`
		DishGroups []models.RestaurantGroup `json:"dish_groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "paneer", resp.Query)
	require.Len(t, resp.DishGroups, 1)
	assert.Equal(t, "spice-villa", resp.DishGroups[0].ID)
	require.Len(t, resp.DishGroups[0].Dishes, 1)
	assert.Equal(t, "Paneer Tikka", resp.DishGroups[0].Dishes[0].Name)
}

func TestSearchEmptyQueryReturnsNoResults(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/search?q=", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Restaurants []models.RestaurantHit `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Restaurants)
}

func TestSearchRecordsRecentSearches(t *testing.T) {
	router := newTestServer(t).Router()

	doRequest(t, router, http.MethodGet, "/api/search?q=paneer", nil)
	doRequest(t, router, http.MethodGet, "/api/search?q=burger", nil)
	doRequest(t, router, http.MethodGet, "/api/search?q=paneer", nil)

	w := doRequest(t, router, http.MethodGet, "/api/search/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Searches []string `json:"searches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"paneer", "burger"}, resp.Searches)
}

func TestSuggestMatchesCategories(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/search/suggestions?q=burger", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	kinds := make(map[models.SuggestionKind]bool)
	for _, s := range resp.Suggestions {
		kinds[s.Kind] = true
	}
	assert.True(t, kinds[models.KindRestaurant])
	assert.True(t, kinds[models.KindCategory])
}

func TestSelectedCityPersists(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodGet, "/api/city", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Vellore")

	w = doRequest(t, router, http.MethodPut, "/api/city", map[string]string{"city": "Chennai"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/city", nil)
	assert.Contains(t, w.Body.String(), "Chennai")

	// restaurant listing now defaults to the selected city
	w = doRequest(t, router, http.MethodGet, "/api/restaurants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var restaurants []models.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	assert.Empty(t, restaurants)
}

func TestSetCityValidation(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodPut, "/api/city", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartLifecycle(t *testing.T) {
	router := newTestServer(t).Router()

	item := addItemRequest{
		ID: "m1", Name: "Paneer Tikka", Price: 100,
		RestaurantID: "spice-villa", RestaurantName: "Spice Villa",
	}
	doRequest(t, router, http.MethodPost, "/api/cart/items", item)
	w := doRequest(t, router, http.MethodPost, "/api/cart/items", item)
	require.Equal(t, http.StatusOK, w.Code)

	var state models.CartState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.Equal(t, 200.0, state.Total)

	qty := 5
	w = doRequest(t, router, http.MethodPatch, "/api/cart/items/m1", updateQuantityRequest{Quantity: &qty})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 500.0, state.Total)

	zero := 0
	w = doRequest(t, router, http.MethodPatch, "/api/cart/items/m1", updateQuantityRequest{Quantity: &zero})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Empty(t, state.Lines)
}

func TestAddCartItemValidation(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodPost, "/api/cart/items", map[string]interface{}{"name": "No ID"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveCartItemUnknownIDIsNoop(t *testing.T) {
	router := newTestServer(t).Router()

	w := doRequest(t, router, http.MethodDelete, "/api/cart/items/ghost", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state models.CartState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Empty(t, state.Lines)
}
