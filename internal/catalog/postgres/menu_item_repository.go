package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shwikky/storefront/internal/models"
)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, items []*models.MenuItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		query := `
            INSERT INTO menu_items (
                id, restaurant_id, name, description, price, item_rating,
                item_rating_count, image_url, veg, customizable, bestseller, category
            ) VALUES (
                $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
            )
        `

		_, err = tx.Exec(ctx, query,
			item.ID,
			item.RestaurantID,
			item.Name,
			item.Description,
			item.Price,
			item.Rating,
			item.RatingCount,
			item.ImageURL,
			item.Veg,
			item.Customizable,
			item.Bestseller,
			item.Category,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *MenuItemRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	query := `
        SELECT
            id, restaurant_id, name, description, price, item_rating,
            item_rating_count, image_url, veg, customizable, bestseller, category
        FROM menu_items
        WHERE restaurant_id = $1
        ORDER BY name ASC
    `
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item := models.MenuItem{}
		err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Rating,
			&item.RatingCount,
			&item.ImageURL,
			&item.Veg,
			&item.Customizable,
			&item.Bestseller,
			&item.Category,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MenuItemRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.DishHit, error) {
	sql := `
        SELECT
            m.id, m.name, m.description, m.price, m.veg, m.image_url,
            m.item_rating, m.item_rating_count, m.customizable, m.bestseller,
            m.restaurant_id, r.name, r.rating
        FROM menu_items m
        JOIN restaurants r ON r.id = m.restaurant_id
        WHERE m.name ILIKE '%' || $1 || '%'
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []models.DishHit
	for rows.Next() {
		hit := models.DishHit{}
		err := rows.Scan(
			&hit.ID,
			&hit.Name,
			&hit.Description,
			&hit.Price,
			&hit.Veg,
			&hit.ImageURL,
			&hit.Rating,
			&hit.RatingCount,
			&hit.Customizable,
			&hit.Bestseller,
			&hit.RestaurantID,
			&hit.RestaurantName,
			&hit.RestaurantRating,
		)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE menu_items")
	return err
}
