package server

import "github.com/shwikky/storefront/internal/models"

// Curated categories offered as typed search suggestions.
var defaultCategories = []models.Category{
	{Label: "Burgers", Description: "All burger restaurants", Slug: "burgers"},
	{Label: "Pizza", Description: "All pizza restaurants", Slug: "pizza"},
	{Label: "Ice Cream", Description: "All dessert places", Slug: "desserts"},
	{Label: "Chicken", Description: "All chicken restaurants", Slug: "chicken"},
	{Label: "Sandwiches", Description: "All sandwich places", Slug: "sandwiches"},
}
