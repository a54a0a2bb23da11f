package cart

import (
	"encoding/json"
	"testing"

	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paneer() models.CartItemPayload {
	return models.CartItemPayload{ID: "m1", Name: "Paneer Tikka", Price: 100, Veg: true}
}

func burger() models.CartItemPayload {
	return models.CartItemPayload{ID: "m2", Name: "Whopper", Price: 180}
}

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	storage := kv.NewMemoryStore()
	s := NewStore(storage)
	s.Load()
	return s, storage
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Add(paneer(), "spice-villa", "Spice Villa")

	state := s.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.Equal(t, 2, state.ItemCount)
	assert.Equal(t, 200.0, state.Total)
}

func TestAddThenSetQuantityRecomputesTotal(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.SetQuantity("m1", 5)

	state := s.State()
	assert.Equal(t, 5, state.ItemCount)
	assert.Equal(t, 500.0, state.Total)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.SetQuantity("m1", 0)

	assert.Empty(t, s.State().Lines)
}

func TestRemoveUnknownItemIsNoop(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Remove("ghost")

	state := s.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.ItemCount)
}

func TestSetQuantityUnknownItemIsNoop(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetQuantity("ghost", 3)
	assert.Empty(t, s.State().Lines)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Add(burger(), "burger-king", "Burger King")
	s.Add(paneer(), "spice-villa", "Spice Villa")

	state := s.State()
	require.Len(t, state.Lines, 2)
	assert.Equal(t, "m1", state.Lines[0].ItemID)
	assert.Equal(t, "m2", state.Lines[1].ItemID)
}

func TestCartMixesRestaurants(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Add(burger(), "burger-king", "Burger King")

	state := s.State()
	require.Len(t, state.Lines, 2)
	assert.Equal(t, 280.0, state.Total)
}

func TestClearEmptiesCart(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Clear()

	state := s.State()
	assert.Empty(t, state.Lines)
	assert.Equal(t, 0, state.ItemCount)
	assert.Equal(t, 0.0, state.Total)
}

func TestLoadRestoresPersistedCart(t *testing.T) {
	storage := kv.NewMemoryStore()

	first := NewStore(storage)
	first.Load()
	first.Add(paneer(), "spice-villa", "Spice Villa")
	first.Add(paneer(), "spice-villa", "Spice Villa")

	second := NewStore(storage)
	second.Load()

	state := second.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.True(t, state.Loaded)
}

func TestLoadMalformedBlobStartsEmpty(t *testing.T) {
	storage := kv.NewMemoryStore()
	require.NoError(t, storage.Set(models.StorageKeyCart, []byte("{not json")))

	s := NewStore(storage)
	s.Load()

	state := s.State()
	assert.Empty(t, state.Lines)
	assert.True(t, state.Loaded)
}

func TestLoadSkipsInvalidLines(t *testing.T) {
	storage := kv.NewMemoryStore()
	lines := []models.CartLine{
		{ItemID: "", Name: "no id", Price: 10, Quantity: 1},
		{ItemID: "m1", Name: "ok", Price: 10, Quantity: 2},
		{ItemID: "m2", Name: "bad qty", Price: 10, Quantity: 0},
		{ItemID: "m1", Name: "dupe", Price: 99, Quantity: 9},
	}
	data, err := json.Marshal(lines)
	require.NoError(t, err)
	require.NoError(t, storage.Set(models.StorageKeyCart, data))

	s := NewStore(storage)
	s.Load()

	state := s.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, "m1", state.Lines[0].ItemID)
	assert.Equal(t, 2, state.Lines[0].Quantity)
}

func TestSubscribersSeeSnapshots(t *testing.T) {
	s, _ := newTestStore(t)

	var got []models.CartState
	s.Subscribe(func(state models.CartState) {
		got = append(got, state)
	})

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.Remove("m1")

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ItemCount)
	assert.Equal(t, 0, got[1].ItemCount)
}

type captureSink struct {
	topics []string
	bodies [][]byte
}

func (c *captureSink) WriteMessage(topic string, msg []byte) error {
	c.topics = append(c.topics, topic)
	c.bodies = append(c.bodies, msg)
	return nil
}

func TestMutationsPublishEvents(t *testing.T) {
	s, _ := newTestStore(t)
	sink := &captureSink{}
	s.SetEventSink(sink)

	s.Add(paneer(), "spice-villa", "Spice Villa")
	s.SetQuantity("m1", 3)
	s.Remove("m1")

	require.Len(t, sink.topics, 3)
	assert.Equal(t, models.TopicCartEvents, sink.topics[0])

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(sink.bodies[1], &event))
	assert.Equal(t, "quantity_updated", event["action"])
	assert.Equal(t, "m1", event["item_id"])
}

func TestPersistFailureKeepsCartUsable(t *testing.T) {
	s := NewStore(failingStore{})
	s.Load()

	s.Add(paneer(), "spice-villa", "Spice Villa")

	state := s.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 100.0, state.Total)
}

type failingStore struct{}

func (failingStore) Get(key string) ([]byte, error) { return nil, kv.ErrNotFound }
func (failingStore) Set(key string, v []byte) error { return assert.AnError }
func (failingStore) Delete(key string) error        { return assert.AnError }
