package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasVegItems(t *testing.T) {
	r := Restaurant{Menu: []MenuItem{{Name: "Chicken Curry"}, {Name: "Dal", Veg: true}}}
	assert.True(t, r.HasVegItems())

	nonVeg := Restaurant{Menu: []MenuItem{{Name: "Chicken Curry"}}}
	assert.False(t, nonVeg.HasVegItems())

	empty := Restaurant{}
	assert.False(t, empty.HasVegItems())
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", DBName: "storefront", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=storefront sslmode=disable",
		cfg.DSN(),
	)
}
