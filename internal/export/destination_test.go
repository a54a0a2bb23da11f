package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shwikky/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForConfigPicksDestination(t *testing.T) {
	console, err := ForConfig(&models.Config{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleDestination{}, console)

	jsonDest, err := ForConfig(&models.Config{OutputPath: t.TempDir(), OutputFormat: "json"})
	require.NoError(t, err)
	assert.IsType(t, &JSONDestination{}, jsonDest)

	csvDest, err := ForConfig(&models.Config{OutputPath: t.TempDir(), OutputFormat: "csv"})
	require.NoError(t, err)
	assert.IsType(t, &CSVDestination{}, csvDest)

	_, err = ForConfig(&models.Config{OutputPath: t.TempDir(), OutputFormat: "xml"})
	assert.Error(t, err)
}

func TestJSONDestinationWritesLinePerMessage(t *testing.T) {
	dir := t.TempDir()
	dest := NewJSONDestination(dir, "snap")

	require.NoError(t, dest.WriteMessage("restaurants", []byte(`{"id":"r1"}`)))
	require.NoError(t, dest.WriteMessage("restaurants", []byte(`{"id":"r2"}`)))
	require.NoError(t, dest.Close())

	data, err := os.ReadFile(filepath.Join(dir, "snap", "restaurants.json"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var row map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &row))
	assert.Equal(t, "r2", row["id"])
}

func TestCSVDestinationWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	dest := NewCSVDestination(dir, "snap")

	require.NoError(t, dest.WriteMessage("menu_items", []byte(`{"id":"m1","name":"Doro Wat","price":180}`)))
	require.NoError(t, dest.WriteMessage("menu_items", []byte(`{"id":"m2","name":"Shiro","price":120}`)))
	require.NoError(t, dest.Close())

	file, err := os.Open(filepath.Join(dir, "snap", "menu_items.csv"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "price"}, rows[0])
	assert.Equal(t, "m1", rows[1][0])
	assert.Equal(t, "Shiro", rows[2][1])
}

func TestRestaurantRecordFlattensCuisines(t *testing.T) {
	r := &models.Restaurant{
		ID: "r1", Name: "Spice Villa", Rating: 4.5, RatingCount: 1200,
		CostForTwo: 400, Cuisines: []string{"North Indian", "Chinese"},
		City: "Vellore", DeliveryTime: "20-25",
		Menu: []models.MenuItem{{ID: "m1"}, {ID: "m2"}},
	}

	rec := NewRestaurantRecord(r)
	assert.Equal(t, "North Indian, Chinese", rec.Cuisines)
	assert.Equal(t, int32(2), rec.ItemCount)
	assert.Equal(t, int32(1200), rec.RatingCount)
}

func TestGetSchemaKnownTopics(t *testing.T) {
	for _, topic := range []string{TopicRestaurants, TopicMenuItems} {
		sh, err := GetSchema(topic)
		require.NoError(t, err, topic)
		assert.NotNil(t, sh)
	}

	_, err := GetSchema("unknown")
	assert.Error(t, err)
}
