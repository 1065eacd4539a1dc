package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
)

// DefaultWorkerCap bounds the carrier-lookup fan-out per dashboard build.
const DefaultWorkerCap = 4

// snapshotTimeLayout matches the display format used everywhere else in the
// tool.
const snapshotTimeLayout = "02/01 15:04"

type orderLister interface {
	GetOrFetch(ctx context.Context, days int) ([]models.Order, []models.Order, error)
}

type statusClassifier interface {
	Classify(ctx context.Context, trackingID string) (models.DashboardStatus, string)
}

// DashboardService merges marketplace orders with carrier lookups into the
// classified dashboard view and the change notifications since the previous
// visit.
type DashboardService struct {
	orders     orderLister
	classifier statusClassifier
	snapshots  models.SnapshotStore
	workerCap  int
	now        func() time.Time
}

func NewDashboardService(orders orderLister, classifier statusClassifier, snapshots models.SnapshotStore, workerCap int) *DashboardService {
	if workerCap < 1 {
		workerCap = DefaultWorkerCap
	}
	return &DashboardService{
		orders:     orders,
		classifier: classifier,
		snapshots:  snapshots,
		workerCap:  workerCap,
		now:        time.Now,
	}
}

type classification struct {
	status   models.DashboardStatus
	position string
}

// Build produces the active dashboard for the last `days` days of orders and
// the status transitions observed against the previous snapshot.
//
// Delivered orders are excluded from the returned list (they only surface as
// transitions); the rest is grouped by status priority, awaiting shipment
// first, preserving arrival order inside each group. The new snapshot fully
// overwrites the previous one; snapshot IO failures degrade to "no previous
// snapshot" and "best-effort save" and never fail the build.
func (d *DashboardService) Build(ctx context.Context, days int) ([]models.DashboardItem, []models.TransitionEvent, error) {
	awaiting, inTransit, err := d.orders.GetOrFetch(ctx, days)
	if err != nil {
		return nil, nil, err
	}

	all := make([]models.Order, 0, len(awaiting)+len(inTransit))
	all = append(all, awaiting...)
	all = append(all, inTransit...)

	results := d.classifyAll(ctx, distinctTrackingIDs(all))

	previous, err := d.snapshots.Load()
	if err != nil {
		logger.Log.Warn("failed to load status snapshot, diffing from empty", zap.Error(err))
		previous = models.Snapshot{}
	}

	var (
		items     []models.DashboardItem
		events    []models.TransitionEvent
		snapshot  = make(models.Snapshot, len(all))
		updatedAt = d.now().Format(snapshotTimeLayout)
	)

	for _, order := range all {
		var current classification
		if order.HasTracking() {
			current = results[order.Tracking]
		} else {
			// The sentinel path never hits the network, so classifying
			// inline keeps the no-tracking case uniform.
			current.status, current.position = d.classifier.Classify(ctx, order.Tracking)
		}

		snapshot[order.ID] = models.SnapshotEntry{
			Status:    current.status,
			Tracking:  order.Tracking,
			ShippedAt: order.ShippedAt,
			UpdatedAt: updatedAt,
		}

		if prev, seen := previous[order.ID]; seen && prev.Status != current.status {
			events = append(events, models.TransitionEvent{
				OrderID: order.ID,
				Buyer:   order.Buyer,
				Title:   order.Title,
				From:    prev.Status,
				To:      current.status,
			})
		}

		if current.status == models.StatusDelivered {
			continue
		}

		items = append(items, models.DashboardItem{
			Order:     order,
			Status:    current.status,
			Posizione: current.position,
		})
	}

	events = append(events, disappearedAsDelivered(previous, snapshot)...)

	if err := d.snapshots.Save(snapshot); err != nil {
		logger.Log.Warn("failed to save status snapshot", zap.Error(err))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return statusPriority(items[i].Status) < statusPriority(items[j].Status)
	})

	return items, events, nil
}

// classifyAll resolves every distinct tracking id to a classification. More
// than one id fans out across a bounded worker group; a single id is
// classified inline to skip the pool overhead. A failing lookup degrades to
// LABEL_CREATED for that id only.
func (d *DashboardService) classifyAll(ctx context.Context, ids []string) map[string]classification {
	switch len(ids) {
	case 0:
		return map[string]classification{}
	case 1:
		status, position := d.classifier.Classify(ctx, ids[0])
		return map[string]classification{ids[0]: {status: status, position: position}}
	}

	fallback := classification{status: models.StatusLabelCreated}

	return collectParallel(ctx, ids, d.workerCap, fallback,
		func(ctx context.Context, id string) (classification, error) {
			status, position := d.classifier.Classify(ctx, id)
			return classification{status: status, position: position}, nil
		})
}

// disappearedAsDelivered emits a synthetic DELIVERED transition for every
// order that was in transit at the previous visit and is gone from the new
// snapshot: the marketplace stopped reporting it, so it was delivered and
// archived upstream. Results are ordered by order id to keep the output
// deterministic.
func disappearedAsDelivered(previous, current models.Snapshot) []models.TransitionEvent {
	var gone []string
	for orderID, prev := range previous {
		if _, alive := current[orderID]; alive {
			continue
		}
		if prev.Status != models.StatusInTransit {
			continue
		}
		gone = append(gone, orderID)
	}
	sort.Strings(gone)

	events := make([]models.TransitionEvent, 0, len(gone))
	for _, orderID := range gone {
		events = append(events, models.TransitionEvent{
			OrderID: orderID,
			From:    models.StatusInTransit,
			To:      models.StatusDelivered,
		})
	}
	return events
}

// distinctTrackingIDs collects the real tracking codes across the orders,
// deduplicated, preserving first-seen order.
func distinctTrackingIDs(orders []models.Order) []string {
	seen := make(map[string]struct{}, len(orders))
	var ids []string
	for _, order := range orders {
		if !order.HasTracking() {
			continue
		}
		if _, dup := seen[order.Tracking]; dup {
			continue
		}
		seen[order.Tracking] = struct{}{}
		ids = append(ids, order.Tracking)
	}
	return ids
}

func statusPriority(status models.DashboardStatus) int {
	switch status {
	case models.StatusAwaitingShipment:
		return 0
	case models.StatusLabelCreated:
		return 1
	case models.StatusInTransit:
		return 2
	default:
		return 3
	}
}
