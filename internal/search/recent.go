package search

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shwikky/storefront/internal/kv"
	"github.com/shwikky/storefront/internal/models"
)

const defaultMaxRecent = 5

// RecentSearches records the user's recent search terms: most recent first,
// deduplicated, capped. Storage failures degrade to in-memory state only.
type RecentSearches struct {
	mu      sync.Mutex
	storage kv.Store
	terms   []string
	max     int
}

func NewRecentSearches(storage kv.Store, max int) *RecentSearches {
	if max <= 0 {
		max = defaultMaxRecent
	}
	r := &RecentSearches{storage: storage, max: max}
	r.load()
	return r
}

func (r *RecentSearches) load() {
	data, err := r.storage.Get(models.StorageKeyRecentSearches)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("search: failed to read recent searches: %v", err)
		}
		return
	}
	if err := json.Unmarshal(data, &r.terms); err != nil {
		log.Printf("search: recent searches blob is malformed, resetting: %v", err)
		r.terms = nil
	}
	if len(r.terms) > r.max {
		r.terms = r.terms[:r.max]
	}
}

// Record moves term to the front, dropping any earlier occurrence.
func (r *RecentSearches) Record(term string) {
	if term == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]string, 0, r.max)
	updated = append(updated, term)
	for _, t := range r.terms {
		if t == term {
			continue
		}
		updated = append(updated, t)
		if len(updated) == r.max {
			break
		}
	}
	r.terms = updated

	data, err := json.Marshal(r.terms)
	if err != nil {
		return
	}
	if err := r.storage.Set(models.StorageKeyRecentSearches, data); err != nil {
		log.Printf("search: failed to persist recent searches: %v", err)
	}
}

// List returns the recent terms, most recent first.
func (r *RecentSearches) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.terms))
	copy(out, r.terms)
	return out
}
