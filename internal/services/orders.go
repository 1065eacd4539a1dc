package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
)

type orderPartitions struct {
	awaiting  []models.Order
	inTransit []models.Order
}

// OrderCacheService caches the two marketplace order partitions. There is no
// TTL: staleness is bounded only by explicit invalidation, triggered by the
// application after any action that changes order state.
type OrderCacheService struct {
	marketplace models.Marketplace

	mu         sync.Mutex
	cached     *orderPartitions
	lastUpdate time.Time
}

func NewOrderCacheService(marketplace models.Marketplace) *OrderCacheService {
	return &OrderCacheService{
		marketplace: marketplace,
	}
}

// GetOrFetch returns the cached partitions, fetching from the marketplace
// only when the cache is empty. A hit returns the stored slices verbatim.
func (s *OrderCacheService) GetOrFetch(ctx context.Context, days int) ([]models.Order, []models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached.awaiting, s.cached.inTransit, nil
	}

	awaiting, inTransit, err := s.marketplace.FetchOrders(ctx, days)
	if err != nil {
		return nil, nil, err
	}

	s.cached = &orderPartitions{awaiting: awaiting, inTransit: inTransit}
	s.lastUpdate = time.Now()

	logger.Log.Info("order cache refreshed",
		zap.Int("awaiting", len(awaiting)),
		zap.Int("inTransit", len(inTransit)),
	)

	return awaiting, inTransit, nil
}

// Invalidate clears the cache; the next GetOrFetch is guaranteed to refetch.
func (s *OrderCacheService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	s.lastUpdate = time.Time{}
}

// LastUpdate reports when the cache was last filled, false when empty.
func (s *OrderCacheService) LastUpdate() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		return time.Time{}, false
	}
	return s.lastUpdate, true
}
