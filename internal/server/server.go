package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shwikky/storefront/internal/browse"
	"github.com/shwikky/storefront/internal/cart"
	"github.com/shwikky/storefront/internal/catalog"
	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
	"github.com/shwikky/storefront/internal/search"
)

// Server wires the storefront services behind an HTTP API.
type Server struct {
	config     *models.Config
	provider   catalog.Provider
	cart       *cart.Store
	storage    kv.Store
	browser    *browse.Engine
	searcher   *search.RemoteSearcher
	recent     *search.RecentSearches
	validate   *validatorv10.Validate
	categories []models.Category
	sink       cart.EventSink
}

// SetEventSink enables search analytics events alongside the cart's own.
func (s *Server) SetEventSink(sink cart.EventSink) {
	s.sink = sink
	s.cart.SetEventSink(sink)
}

func New(config *models.Config, provider catalog.Provider, cartStore *cart.Store, recent *search.RecentSearches, storage kv.Store) *Server {
	return &Server{
		config:     config,
		provider:   provider,
		cart:       cartStore,
		storage:    storage,
		browser:    browse.NewEngine(config.PromotedChainIDs, config.NewArrivalIDs),
		searcher:   search.NewRemoteSearcher(provider, config.MaxRestaurantHits, config.MaxDishHits),
		recent:     recent,
		validate:   validatorv10.New(),
		categories: defaultCategories,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/restaurants", s.listRestaurants)
		api.GET("/restaurants/:id", s.getRestaurant)

		api.GET("/city", s.getCity)
		api.PUT("/city", s.setCity)

		api.GET("/search", s.searchCatalog)
		api.GET("/search/suggestions", s.suggest)
		api.GET("/search/recent", s.recentSearches)

		api.GET("/cart", s.getCart)
		api.POST("/cart/items", s.addCartItem)
		api.PATCH("/cart/items/:id", s.updateCartItem)
		api.DELETE("/cart/items/:id", s.removeCartItem)
		api.DELETE("/cart", s.clearCart)
	}

	return r
}

// Run blocks serving HTTP on the configured listen address.
func (s *Server) Run() error {
	return s.Router().Run(s.config.ListenAddr)
}
