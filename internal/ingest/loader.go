package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
	"github.com/shwikky/storefront/internal/catalog/postgres"
	"github.com/shwikky/storefront/internal/models"
)

const insertBatchSize = 500

// Dataset holds the parsed rows of a catalog CSV, restaurants deduplicated
// by their code with the first occurrence winning.
type Dataset struct {
	Restaurants []*models.Restaurant
	MenuItems   []*models.MenuItem
}

// Loader parses catalog CSVs and bulk-inserts them through the postgres
// repositories.
type Loader struct {
	restaurants *postgres.RestaurantRepository
	menuItems   *postgres.MenuItemRepository
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{
		restaurants: postgres.NewRestaurantRepository(pool),
		menuItems:   postgres.NewMenuItemRepository(pool),
	}
}

// Run reads the CSV at path and loads it into the database.
func (l *Loader) Run(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	dataset, err := Parse(file)
	if err != nil {
		return err
	}
	log.Printf("Parsed %d restaurants and %d menu items", len(dataset.Restaurants), len(dataset.MenuItems))

	bar := progressbar.Default(int64(len(dataset.Restaurants)+len(dataset.MenuItems)), "loading catalog")

	for start := 0; start < len(dataset.Restaurants); start += insertBatchSize {
		end := min(start+insertBatchSize, len(dataset.Restaurants))
		if err := l.restaurants.BulkCreate(ctx, dataset.Restaurants[start:end]); err != nil {
			return fmt.Errorf("failed to insert restaurants: %w", err)
		}
		bar.Add(end - start)
	}

	for start := 0; start < len(dataset.MenuItems); start += insertBatchSize {
		end := min(start+insertBatchSize, len(dataset.MenuItems))
		if err := l.menuItems.BulkCreate(ctx, dataset.MenuItems[start:end]); err != nil {
			return fmt.Errorf("failed to insert menu items: %w", err)
		}
		bar.Add(end - start)
	}

	return nil
}

// Parse reads a catalog CSV. The first row names the columns; each data row
// carries one menu item together with its restaurant's details.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"restaurant code", "restaurant", "item", "price"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	dataset := &Dataset{}
	seen := make(map[string]bool)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		restaurantID := field(row, "restaurant code")
		if restaurantID == "" {
			continue
		}

		if !seen[restaurantID] {
			seen[restaurantID] = true
			name := field(row, "restaurant")
			rating, _ := strconv.ParseFloat(field(row, "restaurant rating"), 64)
			ratingCount, _ := strconv.Atoi(digitsOnly(field(row, "rating count")))
			dataset.Restaurants = append(dataset.Restaurants, &models.Restaurant{
				ID:           restaurantID,
				Name:         name,
				Rating:       rating,
				RatingCount:  ratingCount,
				CostForTwo:   parseCost(field(row, "cost")),
				Cuisines:     splitCuisines(field(row, "cuisine")),
				Address:      field(row, "address"),
				City:         field(row, "city"),
				Subcity:      field(row, "subcity"),
				DeliveryTime: deliveryTimeFor(restaurantID),
				ImageURL:     placeholderImage(name, 200, 300),
				LicenseNo:    field(row, "licension no"),
			})
		}

		itemName := field(row, "item")
		price, _ := strconv.ParseFloat(field(row, "price"), 64)
		dataset.MenuItems = append(dataset.MenuItems, &models.MenuItem{
			ID:           uuid.NewString(),
			RestaurantID: restaurantID,
			Name:         itemName,
			Price:        price,
			Veg:          field(row, "veg_or_non_veg") == "Veg",
			ImageURL:     placeholderImage(itemName, 100, 100),
		})
	}

	return dataset, nil
}

// parseCost strips currency symbols and separators before parsing.
func parseCost(raw string) int {
	cost, _ := strconv.Atoi(digitsOnly(raw))
	return cost
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitCuisines(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cuisines := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cuisines = append(cuisines, trimmed)
		}
	}
	return cuisines
}

// deliveryTimeFor derives a stable estimate window from the restaurant id.
// The source data carries no delivery times, so repeated ingests must not
// shuffle the fast-delivery shelf.
func deliveryTimeFor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	lower := 15 + int(h.Sum32()%6)*5
	return fmt.Sprintf("%d-%d", lower, lower+5)
}

func placeholderImage(query string, height, width int) string {
	return fmt.Sprintf("/placeholder.svg?height=%d&width=%d&query=%s", height, width, url.QueryEscape(query))
}
