package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
)

// DefaultTrackingTTL is how long a cached carrier response stays fresh.
const DefaultTrackingTTL = time.Hour

type trackingEntry struct {
	data      json.RawMessage
	fetchedAt time.Time
}

// TrackingCacheService caches raw carrier responses per tracking code with a
// lazy per-entry TTL. Carrier lookups are the highest-latency calls of the
// whole tool, so on a fetch failure a stale entry is served rather than
// nothing.
type TrackingCacheService struct {
	carrier models.Carrier
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]trackingEntry
}

func NewTrackingCacheService(carrier models.Carrier, ttl time.Duration) *TrackingCacheService {
	if ttl <= 0 {
		ttl = DefaultTrackingTTL
	}
	return &TrackingCacheService{
		carrier: carrier,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]trackingEntry),
	}
}

// Get returns the raw carrier data for a tracking code. A fresh cache entry
// is returned without a network call; on miss or expiry the carrier is
// queried. The second return value is false only when nothing was ever
// cached and the fetch failed.
func (s *TrackingCacheService) Get(ctx context.Context, trackingID string) (json.RawMessage, bool) {
	s.mu.Lock()
	entry, cached := s.entries[trackingID]
	s.mu.Unlock()

	if cached && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.data, true
	}

	data, err := s.carrier.FetchRaw(ctx, trackingID)
	if err != nil {
		if cached {
			logger.Log.Warn("carrier fetch failed, serving stale tracking data",
				zap.String("tracking", maskTracking(trackingID)),
				zap.Error(err),
			)
			return entry.data, true
		}
		logger.Log.Warn("carrier fetch failed with empty cache",
			zap.String("tracking", maskTracking(trackingID)),
			zap.Error(err),
		)
		return nil, false
	}

	s.mu.Lock()
	s.entries[trackingID] = trackingEntry{data: data, fetchedAt: s.now()}
	s.mu.Unlock()

	return data, true
}

// maskTracking hides the middle of a tracking code in log output.
func maskTracking(code string) string {
	if code == "" {
		return "N/A"
	}
	if len(code) <= 6 {
		return "***"
	}
	return code[:3] + "..." + code[len(code)-3:]
}
