package models

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination=mocks/mock_marketplace.go . Marketplace
type Marketplace interface {
	// FetchOrders returns the paid orders of the last `days` days partitioned
	// into awaiting-shipment and in-transit. Orders already delivered at the
	// source are excluded upstream.
	FetchOrders(ctx context.Context, days int) (awaiting []Order, inTransit []Order, err error)

	// UploadTracking pushes a tracking number back to the marketplace and
	// marks the order as shipped.
	UploadTracking(ctx context.Context, orderID, tracking string) error
}

//go:generate mockgen -destination=mocks/mock_carrier.go . Carrier
type Carrier interface {
	// FetchRaw returns the carrier's raw tracking response. The shape is not
	// contractually fixed (object or list), so callers get the raw JSON.
	FetchRaw(ctx context.Context, trackingID string) (json.RawMessage, error)
}

//go:generate mockgen -destination=mocks/mock_label_provider.go . LabelProvider
type LabelProvider interface {
	GenerateLabel(ctx context.Context, req LabelRequest) (*LabelResult, error)

	ListShipments(ctx context.Context, limit int) ([]Shipment, error)

	// DownloadPDF saves the label PDF locally and returns the file path.
	DownloadPDF(ctx context.Context, url, tracking string) (string, error)
}

//go:generate mockgen -destination=mocks/mock_snapshot_store.go . SnapshotStore
type SnapshotStore interface {
	Load() (Snapshot, error)

	Save(snapshot Snapshot) error
}

//go:generate mockgen -destination=mocks/mock_history_store.go . HistoryStore
type HistoryStore interface {
	Append(entry HistoryEntry) error

	List() ([]HistoryEntry, error)
}
