package export

import (
	"fmt"
	"strings"

	"github.com/shwikky/storefront/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// Snapshot topics produced by the export command.
const (
	TopicRestaurants = "restaurants"
	TopicMenuItems   = "menu_items"
)

// RestaurantRecord is the flat snapshot row for a restaurant. Cuisines are
// joined into a single field so every format (csv, parquet) stays flat.
type RestaurantRecord struct {
	ID           string  `json:"id" parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name         string  `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Rating       float64 `json:"rating" parquet:"name=rating,type=DOUBLE"`
	RatingCount  int32   `json:"rating_count" parquet:"name=rating_count,type=INT32"`
	CostForTwo   int32   `json:"cost_for_two" parquet:"name=cost_for_two,type=INT32"`
	Cuisines     string  `json:"cuisines" parquet:"name=cuisines,type=BYTE_ARRAY,convertedtype=UTF8"`
	Address      string  `json:"address" parquet:"name=address,type=BYTE_ARRAY,convertedtype=UTF8"`
	City         string  `json:"city" parquet:"name=city,type=BYTE_ARRAY,convertedtype=UTF8"`
	Subcity      string  `json:"subcity" parquet:"name=subcity,type=BYTE_ARRAY,convertedtype=UTF8"`
	DeliveryTime string  `json:"delivery_time" parquet:"name=delivery_time,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemCount    int32   `json:"item_count" parquet:"name=item_count,type=INT32"`
}

// MenuItemRecord is the flat snapshot row for a menu item.
type MenuItemRecord struct {
	ID           string  `json:"id" parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	RestaurantID string  `json:"restaurant_id" parquet:"name=restaurant_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name         string  `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Price        float64 `json:"price" parquet:"name=price,type=DOUBLE"`
	Veg          bool    `json:"veg" parquet:"name=veg,type=BOOLEAN"`
	Bestseller   bool    `json:"bestseller" parquet:"name=bestseller,type=BOOLEAN"`
	Category     string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
}

func NewRestaurantRecord(r *models.Restaurant) RestaurantRecord {
	return RestaurantRecord{
		ID:           r.ID,
		Name:         r.Name,
		Rating:       r.Rating,
		RatingCount:  int32(r.RatingCount),
		CostForTwo:   int32(r.CostForTwo),
		Cuisines:     strings.Join(r.Cuisines, ", "),
		Address:      r.Address,
		City:         r.City,
		Subcity:      r.Subcity,
		DeliveryTime: r.DeliveryTime,
		ItemCount:    int32(len(r.Menu)),
	}
}

func NewMenuItemRecord(item *models.MenuItem) MenuItemRecord {
	return MenuItemRecord{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Price:        item.Price,
		Veg:          item.Veg,
		Bestseller:   item.Bestseller,
		Category:     item.Category,
	}
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case TopicRestaurants:
		sh, err = schema.NewSchemaHandlerFromStruct(new(RestaurantRecord))
	case TopicMenuItems:
		sh, err = schema.NewSchemaHandlerFromStruct(new(MenuItemRecord))
	default:
		return nil, fmt.Errorf("unknown snapshot topic: %s", topic)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}
	return sh, nil
}
