package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
)

// EventSink receives cart analytics events. It matches the export destination
// signature so a Kafka or file destination can be plugged in directly.
type EventSink interface {
	WriteMessage(topic string, msg []byte) error
}

// Store is the single source of truth for the in-progress order. Mutations
// are atomic from the caller's perspective; the snapshot handed to
// subscribers never aliases internal state.
type Store struct {
	mu          sync.Mutex
	storage     kv.Store
	lines       map[string]*models.CartLine
	order       []string // item ids in insertion order
	loaded      bool
	subscribers []func(models.CartState)
	sink        EventSink
}

func NewStore(storage kv.Store) *Store {
	return &Store{
		storage: storage,
		lines:   make(map[string]*models.CartLine),
	}
}

// SetEventSink enables analytics events for cart mutations. Publish failures
// are logged and never block the mutation.
func (s *Store) SetEventSink(sink EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation.
func (s *Store) Subscribe(fn func(models.CartState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load hydrates the cart from persisted storage. A missing or malformed blob
// yields an empty cart; Load never fails the application.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]*models.CartLine)
	s.order = s.order[:0]
	s.loaded = true

	data, err := s.storage.Get(models.StorageKeyCart)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("cart: failed to read persisted state, starting empty: %v", err)
		}
		return
	}

	var persisted []models.CartLine
	if err := json.Unmarshal(data, &persisted); err != nil {
		log.Printf("cart: persisted state is malformed, starting empty: %v", err)
		return
	}

	for i := range persisted {
		line := persisted[i]
		if line.ItemID == "" || line.Quantity < 1 {
			continue
		}
		if _, exists := s.lines[line.ItemID]; exists {
			continue
		}
		s.lines[line.ItemID] = &line
		s.order = append(s.order, line.ItemID)
	}
}

// Add inserts a line with quantity 1, or increments the existing line for the
// same item id. Carts may mix items from different restaurants.
func (s *Store) Add(item models.CartItemPayload, restaurantID, restaurantName string) {
	s.mu.Lock()
	if line, ok := s.lines[item.ID]; ok {
		line.Quantity++
	} else {
		s.lines[item.ID] = &models.CartLine{
			ItemID:         item.ID,
			Name:           item.Name,
			Price:          item.Price,
			ImageURL:       item.ImageURL,
			Veg:            item.Veg,
			RestaurantID:   restaurantID,
			RestaurantName: restaurantName,
			Quantity:       1,
		}
		s.order = append(s.order, item.ID)
	}
	s.afterMutation("item_added", item.ID)
}

// Remove deletes the line entirely. Unknown ids are a no-op.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	if _, ok := s.lines[itemID]; !ok {
		s.mu.Unlock()
		return
	}
	s.deleteLine(itemID)
	s.afterMutation("item_removed", itemID)
}

// SetQuantity sets the line's quantity directly. A quantity of zero or less
// removes the line; unknown ids are a no-op.
func (s *Store) SetQuantity(itemID string, quantity int) {
	s.mu.Lock()
	line, ok := s.lines[itemID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if quantity <= 0 {
		s.deleteLine(itemID)
		s.afterMutation("item_removed", itemID)
		return
	}
	line.Quantity = quantity
	s.afterMutation("quantity_updated", itemID)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = make(map[string]*models.CartLine)
	s.order = s.order[:0]
	s.afterMutation("cart_cleared", "")
}

// State returns the observable snapshot, totals recomputed from the lines.
func (s *Store) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() models.CartState {
	state := models.CartState{
		Lines:  make([]models.CartLine, 0, len(s.order)),
		Loaded: s.loaded,
	}
	for _, id := range s.order {
		line := s.lines[id]
		state.Lines = append(state.Lines, *line)
		state.ItemCount += line.Quantity
		state.Total += line.Price * float64(line.Quantity)
	}
	return state
}

func (s *Store) deleteLine(itemID string) {
	delete(s.lines, itemID)
	for i, id := range s.order {
		if id == itemID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// afterMutation persists, notifies and publishes. Callers hold the lock on
// entry; it is released here so subscribers run outside the critical section.
func (s *Store) afterMutation(action, itemID string) {
	state := s.snapshot()
	s.persist(state)
	subscribers := s.subscribers
	sink := s.sink
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
	if sink != nil {
		s.publish(sink, action, itemID, state)
	}
}

// persist writes the line list to storage. A write failure keeps the
// in-memory cart usable for the session.
func (s *Store) persist(state models.CartState) {
	data, err := json.Marshal(state.Lines)
	if err != nil {
		log.Printf("cart: failed to serialise state: %v", err)
		return
	}
	if err := s.storage.Set(models.StorageKeyCart, data); err != nil {
		log.Printf("cart: failed to persist state: %v", err)
	}
}

func (s *Store) publish(sink EventSink, action, itemID string, state models.CartState) {
	event := map[string]interface{}{
		"action":     action,
		"item_id":    itemID,
		"item_count": state.ItemCount,
		"total":      state.Total,
		"timestamp":  time.Now().Unix(),
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := sink.WriteMessage(models.TopicCartEvents, msg); err != nil {
		log.Printf("cart: failed to publish %s event: %v", action, err)
	}
}
