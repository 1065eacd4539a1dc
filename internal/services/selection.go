package services

import "github.com/dmarcangeli/spedman/internal/models"

type ActionKind string

const (
	ActionInvalid             ActionKind = "invalid"
	ActionOrder               ActionKind = "order"
	ActionTracking            ActionKind = "tracking"
	ActionTrackingUnavailable ActionKind = "tracking_unavailable"
)

// Action is the semantic meaning of a 1-based menu selection.
type Action struct {
	Kind     ActionKind
	Order    *models.DashboardItem
	Tracking string
	Status   models.DashboardStatus
}

// ResolveSelection maps a 1-based selection against the displayed dashboard
// list back to an action. Pure function of its inputs: the caller re-runs
// the dashboard if state may have changed between display and selection.
func ResolveSelection(items []models.DashboardItem, selection int) Action {
	if selection < 1 || selection > len(items) {
		return Action{Kind: ActionInvalid}
	}

	item := items[selection-1]

	if item.Status == models.StatusAwaitingShipment {
		return Action{Kind: ActionOrder, Order: &item}
	}

	if item.HasTracking() {
		return Action{Kind: ActionTracking, Tracking: item.Tracking, Status: item.Status}
	}

	return Action{Kind: ActionTrackingUnavailable}
}

// ResolveOrder maps a 1-based selection against a plain order list.
func ResolveOrder(orders []models.Order, selection int) (*models.Order, bool) {
	if selection < 1 || selection > len(orders) {
		return nil, false
	}
	order := orders[selection-1]
	return &order, true
}

// ResolveShipment maps a 1-based selection against the provider history list.
func ResolveShipment(shipments []models.Shipment, selection int) (*models.Shipment, bool) {
	if selection < 1 || selection > len(shipments) {
		return nil, false
	}
	shipment := shipments[selection-1]
	return &shipment, true
}
