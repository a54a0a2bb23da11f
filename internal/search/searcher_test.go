package search

import (
	"context"
	"errors"
	"testing"

	"github.com/shwikky/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingProvider lets a test hold searches in flight while newer ones are
// issued. Each search signals entered, then waits for release.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
	err     error
}

func (p *blockingProvider) ListRestaurants(ctx context.Context, city string) ([]models.Restaurant, error) {
	return nil, nil
}

func (p *blockingProvider) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return nil, nil
}

func (p *blockingProvider) SearchRestaurants(ctx context.Context, query string, limit int) ([]models.RestaurantHit, error) {
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}
	if p.err != nil {
		return nil, p.err
	}
	return []models.RestaurantHit{{ID: "r-" + query, Name: query}}, nil
}

func (p *blockingProvider) SearchMenuItems(ctx context.Context, query string, limit int) ([]models.DishHit, error) {
	return []models.DishHit{{ID: "d-" + query, Name: query, RestaurantID: "r-" + query}}, nil
}

func TestSearchReturnsFreshResult(t *testing.T) {
	s := NewRemoteSearcher(&blockingProvider{}, 10, 20)

	result, fresh, err := s.Search(context.Background(), "pizza")
	require.NoError(t, err)
	assert.True(t, fresh)
	require.NotNil(t, result)
	assert.Equal(t, "pizza", result.Query)
	require.Len(t, result.Restaurants, 1)
	require.Len(t, result.Dishes, 1)
}

func TestSearchLastQueryWins(t *testing.T) {
	provider := &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewRemoteSearcher(provider, 10, 20)

	type outcome struct {
		result *Result
		fresh  bool
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		r, fresh, err := s.Search(context.Background(), "piz")
		first <- outcome{r, fresh, err}
	}()
	<-provider.entered

	done := make(chan outcome, 1)
	go func() {
		r, fresh, err := s.Search(context.Background(), "pizza")
		done <- outcome{r, fresh, err}
	}()
	<-provider.entered

	// both searches are issued and in flight; let them finish
	close(provider.release)

	stale := <-first
	require.NoError(t, stale.err)
	assert.False(t, stale.fresh, "older search must be reported stale")
	assert.Nil(t, stale.result)

	newest := <-done
	require.NoError(t, newest.err)
	assert.True(t, newest.fresh)
	require.NotNil(t, newest.result)
	assert.Equal(t, "pizza", newest.result.Query)
}

func TestSearchEmptyQuery(t *testing.T) {
	s := NewRemoteSearcher(&blockingProvider{}, 10, 20)

	result, fresh, err := s.Search(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Empty(t, result.Restaurants)
	assert.Empty(t, result.Dishes)
}

func TestSearchPropagatesProviderError(t *testing.T) {
	wantErr := errors.New("connection refused")
	s := NewRemoteSearcher(&blockingProvider{err: wantErr}, 10, 20)

	result, _, err := s.Search(context.Background(), "pizza")
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, result)
}
