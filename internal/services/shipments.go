package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
)

const historyTimeLayout = "02/01/2006 15:04"

type cacheInvalidator interface {
	Invalidate()
}

// ShipmentService owns the label-creation flow and the cached page of
// provider shipments. It is also where the invalidation policy lives: a
// label bound to a marketplace order makes the order cache stale, and any
// new label makes the shipment list stale.
type ShipmentService struct {
	provider    models.LabelProvider
	marketplace models.Marketplace
	history     models.HistoryStore
	orderCache  cacheInvalidator
	now         func() time.Time

	mu         sync.Mutex
	items      []models.Shipment
	lastUpdate time.Time
}

func NewShipmentService(
	provider models.LabelProvider,
	marketplace models.Marketplace,
	history models.HistoryStore,
	orderCache cacheInvalidator,
) *ShipmentService {
	return &ShipmentService{
		provider:    provider,
		marketplace: marketplace,
		history:     history,
		orderCache:  orderCache,
		now:         time.Now,
	}
}

// ListShipments returns the cached provider page, fetching on first use or
// after invalidation.
func (s *ShipmentService) ListShipments(ctx context.Context, limit int) ([]models.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items != nil {
		return s.items, nil
	}

	items, err := s.provider.ListShipments(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.items = items
	s.lastUpdate = s.now()

	return items, nil
}

// InvalidateList clears the cached shipment page.
func (s *ShipmentService) InvalidateList() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.lastUpdate = time.Time{}
}

// CreateLabel generates a label, records it in the local history and, when
// the label belongs to a marketplace order, pushes the tracking number back
// and applies the invalidation policy. orderID is empty for manual labels.
func (s *ShipmentService) CreateLabel(ctx context.Context, req models.LabelRequest, orderID, title string) (*models.LabelResult, error) {
	result, err := s.provider.GenerateLabel(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("label generation failed: %w", err)
	}

	kind := models.HistoryKindManual
	historyOrderID := "-"
	historyTitle := "-"
	if orderID != "" {
		kind = models.HistoryKindMarketplace
		historyOrderID = orderID
	}
	if title != "" {
		historyTitle = title
	}

	if err := s.history.Append(models.HistoryEntry{
		Date:      s.now().Format(historyTimeLayout),
		Kind:      kind,
		Recipient: req.Recipient.Name,
		Tracking:  result.TrackingCode,
		OrderID:   historyOrderID,
		Title:     historyTitle,
	}); err != nil {
		// History is a convenience record; the label already exists.
		logger.Log.Warn("failed to append local history", zap.Error(err))
	}

	if orderID != "" {
		if err := s.marketplace.UploadTracking(ctx, orderID, result.TrackingCode); err != nil {
			logger.Log.Error("failed to upload tracking to marketplace",
				zap.String("orderID", orderID),
				zap.Error(err),
			)
			// The label is still usable; the operator retries the upload
			// from the marketplace side.
		}
	}

	s.OnLabelCreated(orderID)

	logger.Log.Info("label created",
		zap.String("tracking", result.TrackingCode),
		zap.String("kind", kind),
	)

	return result, nil
}

// OnLabelCreated applies the cache invalidation policy after a successful
// label creation. The order cache is cleared only for marketplace-bound
// labels; the provider shipment list always gains a row.
func (s *ShipmentService) OnLabelCreated(orderID string) {
	if orderID != "" {
		s.orderCache.Invalidate()
	}
	s.InvalidateList()
}
