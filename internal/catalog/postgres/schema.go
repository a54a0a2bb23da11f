package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema creates the catalog tables if they do not exist. Ingest and seed
// call this before loading.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	restaurantsSQL := `
        CREATE TABLE IF NOT EXISTS restaurants (
            id VARCHAR(255) PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            rating_count INTEGER NOT NULL DEFAULT 0,
            cost_for_two INTEGER NOT NULL DEFAULT 0,
            cuisines TEXT[] NOT NULL DEFAULT '{}',
            address TEXT,
            city VARCHAR(255),
            subcity VARCHAR(255),
            delivery_time VARCHAR(50),
            image_url TEXT,
            license_no VARCHAR(255)
        )
    `
	if _, err := pool.Exec(ctx, restaurantsSQL); err != nil {
		return err
	}

	menuItemsSQL := `
        CREATE TABLE IF NOT EXISTS menu_items (
            id UUID PRIMARY KEY,
            restaurant_id VARCHAR(255) NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
            name VARCHAR(255) NOT NULL,
            description TEXT,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            item_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            item_rating_count INTEGER NOT NULL DEFAULT 0,
            image_url TEXT,
            veg BOOLEAN NOT NULL DEFAULT FALSE,
            customizable BOOLEAN NOT NULL DEFAULT FALSE,
            bestseller BOOLEAN NOT NULL DEFAULT FALSE,
            category VARCHAR(255)
        )
    `
	if _, err := pool.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	indexSQL := `
        CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items (restaurant_id);
        CREATE INDEX IF NOT EXISTS idx_restaurants_city ON restaurants (city);
    `
	_, err := pool.Exec(ctx, indexSQL)
	return err
}
