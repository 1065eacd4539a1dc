package models

// Shipment is one record from the label provider's shipment list.
type Shipment struct {
	TrackingCode string  `json:"trackingCode"`
	CreatedAt    string  `json:"createdAt"`
	Status       string  `json:"status"`
	Weight       float64 `json:"weight"`
	LabelURL     string  `json:"labelUrl"`
}

// LabelRequest is the payload sent to the label provider.
type LabelRequest struct {
	Weight       float64   `json:"weight"`
	Sender       Recipient `json:"sender"`
	Recipient    Recipient `json:"recipient"`
	DiscountCode string    `json:"discountCode,omitempty"`
}

// LabelResult is what a successful label creation returns.
type LabelResult struct {
	TrackingCode string
	LabelURL     string
}

const (
	HistoryKindMarketplace = "EBAY"
	HistoryKindManual      = "MANUALE"
)

// HistoryEntry is one row of the local shipment history file.
type HistoryEntry struct {
	Date      string `json:"data"`
	Kind      string `json:"tipo"`
	Recipient string `json:"destinatario"`
	Tracking  string `json:"tracking"`
	OrderID   string `json:"order_id"`
	Title     string `json:"titolo"`
}
