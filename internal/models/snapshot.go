package models

// SnapshotEntry is the persisted per-order record used to detect status
// changes between dashboard visits.
type SnapshotEntry struct {
	Status    DashboardStatus `json:"stato"`
	Tracking  string          `json:"tracking"`
	ShippedAt string          `json:"shipped_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// Snapshot maps order id to its last observed state. Only the immediately
// preceding generation is kept: every dashboard build overwrites it in full.
type Snapshot map[string]SnapshotEntry
