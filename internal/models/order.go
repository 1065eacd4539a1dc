package models

// DashboardStatus is the derived shipment-lifecycle state of an order.
type DashboardStatus string

const (
	StatusAwaitingShipment DashboardStatus = "AWAITING_SHIPMENT"
	StatusLabelCreated     DashboardStatus = "LABEL_CREATED"
	StatusInTransit        DashboardStatus = "IN_TRANSIT"
	StatusDelivered        DashboardStatus = "DELIVERED"
)

// TrackingUnavailable is the placeholder the marketplace import uses when an
// order has no tracking number assigned yet.
const TrackingUnavailable = "N.D."

// Recipient is a structured shipping address, already normalized for the
// label provider (phone without international prefix).
type Recipient struct {
	Name       string `json:"name" yaml:"name"`
	Address    string `json:"address" yaml:"address"`
	City       string `json:"city" yaml:"city"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	Phone      string `json:"phone" yaml:"phone"`
}

// Order is a paid marketplace order. Date fields are display-formatted
// (dd/mm hh:mm) because they are only ever shown in tables.
type Order struct {
	ID        string
	Buyer     string
	Date      string
	Title     string
	Recipient Recipient
	Tracking  string
	ShippedAt string
}

// HasTracking reports whether the order carries a real tracking code.
func (o Order) HasTracking() bool {
	return o.Tracking != "" && o.Tracking != TrackingUnavailable
}

// DashboardItem is an order enriched with its derived status and last known
// location. Built fresh on every dashboard visit, never persisted.
type DashboardItem struct {
	Order
	Status    DashboardStatus
	Posizione string
}

// TransitionEvent records a status change detected between two dashboard
// visits, shown as a notification.
type TransitionEvent struct {
	OrderID string
	Buyer   string
	Title   string
	From    DashboardStatus
	To      DashboardStatus
}
