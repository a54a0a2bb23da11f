package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shwikky/storefront/internal/models"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, restaurant := range restaurants {
		query := `
            INSERT INTO restaurants (
                id, name, rating, rating_count, cost_for_two, cuisines,
                address, city, subcity, delivery_time, image_url, license_no
            ) VALUES (
                $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
            )
            ON CONFLICT (id) DO NOTHING
        `

		_, err = tx.Exec(ctx, query,
			restaurant.ID,
			restaurant.Name,
			restaurant.Rating,
			restaurant.RatingCount,
			restaurant.CostForTwo,
			restaurant.Cuisines,
			restaurant.Address,
			restaurant.City,
			restaurant.Subcity,
			restaurant.DeliveryTime,
			restaurant.ImageURL,
			restaurant.LicenseNo,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *RestaurantRepository) GetByCity(ctx context.Context, city string, limit, offset int) ([]*models.Restaurant, error) {
	query := `
        SELECT
            id, name, rating, rating_count, cost_for_two, cuisines,
            address, city, subcity, delivery_time, image_url, license_no
        FROM restaurants
        WHERE ($1 = '' OR city = $1)
        ORDER BY rating DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.pool.Query(ctx, query, city, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{}
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Rating,
			&restaurant.RatingCount,
			&restaurant.CostForTwo,
			&restaurant.Cuisines,
			&restaurant.Address,
			&restaurant.City,
			&restaurant.Subcity,
			&restaurant.DeliveryTime,
			&restaurant.ImageURL,
			&restaurant.LicenseNo,
		)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	query := `
        SELECT
            id, name, rating, rating_count, cost_for_two, cuisines,
            address, city, subcity, delivery_time, image_url, license_no
        FROM restaurants
        WHERE id = $1
    `
	restaurant := &models.Restaurant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Rating,
		&restaurant.RatingCount,
		&restaurant.CostForTwo,
		&restaurant.Cuisines,
		&restaurant.Address,
		&restaurant.City,
		&restaurant.Subcity,
		&restaurant.DeliveryTime,
		&restaurant.ImageURL,
		&restaurant.LicenseNo,
	)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (r *RestaurantRepository) Search(ctx context.Context, query string, limit int) ([]*models.Restaurant, error) {
	sql := `
        SELECT
            id, name, rating, rating_count, cost_for_two, cuisines,
            address, city, subcity, delivery_time, image_url, license_no
        FROM restaurants
        WHERE name ILIKE '%' || $1 || '%'
           OR EXISTS (
               SELECT 1 FROM unnest(cuisines) AS cuisine
               WHERE cuisine ILIKE '%' || $1 || '%'
           )
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{}
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Rating,
			&restaurant.RatingCount,
			&restaurant.CostForTwo,
			&restaurant.Cuisines,
			&restaurant.Address,
			&restaurant.City,
			&restaurant.Subcity,
			&restaurant.DeliveryTime,
			&restaurant.ImageURL,
			&restaurant.LicenseNo,
		)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE restaurants CASCADE")
	return err
}
