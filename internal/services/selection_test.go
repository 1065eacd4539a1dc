package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarcangeli/spedman/internal/models"
)

func TestResolveSelection(t *testing.T) {
	items := []models.DashboardItem{
		{
			Order:  models.Order{ID: "A1", Tracking: models.TrackingUnavailable},
			Status: models.StatusAwaitingShipment,
		},
		{
			Order:  models.Order{ID: "L1", Tracking: "TRKL1"},
			Status: models.StatusLabelCreated,
		},
		{
			Order:  models.Order{ID: "T1", Tracking: "TRKT1"},
			Status: models.StatusInTransit,
		},
		{
			Order:  models.Order{ID: "L2", Tracking: models.TrackingUnavailable},
			Status: models.StatusLabelCreated,
		},
	}

	testCases := []struct {
		testName     string
		selection    int
		expectedKind ActionKind
	}{
		{testName: "zero is out of range", selection: 0, expectedKind: ActionInvalid},
		{testName: "negative is out of range", selection: -3, expectedKind: ActionInvalid},
		{testName: "past the end is out of range", selection: 5, expectedKind: ActionInvalid},
		{testName: "awaiting shipment starts the label flow", selection: 1, expectedKind: ActionOrder},
		{testName: "label created with tracking shows detail", selection: 2, expectedKind: ActionTracking},
		{testName: "in transit shows detail", selection: 3, expectedKind: ActionTracking},
		{testName: "sentinel tracking has nothing to show", selection: 4, expectedKind: ActionTrackingUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			action := ResolveSelection(items, tc.selection)
			assert.Equal(t, tc.expectedKind, action.Kind)
		})
	}

	action := ResolveSelection(items, 1)
	require.NotNil(t, action.Order)
	assert.Equal(t, "A1", action.Order.Order.ID)

	action = ResolveSelection(items, 3)
	assert.Equal(t, "TRKT1", action.Tracking)
	assert.Equal(t, models.StatusInTransit, action.Status)
}

func TestResolveSelectionEmptyList(t *testing.T) {
	action := ResolveSelection(nil, 1)
	assert.Equal(t, ActionInvalid, action.Kind)
}

func TestResolveOrder(t *testing.T) {
	orders := []models.Order{{ID: "A"}, {ID: "B"}}

	order, ok := ResolveOrder(orders, 2)
	require.True(t, ok)
	assert.Equal(t, "B", order.ID)

	_, ok = ResolveOrder(orders, 0)
	assert.False(t, ok)

	_, ok = ResolveOrder(orders, 3)
	assert.False(t, ok)
}

func TestResolveShipment(t *testing.T) {
	shipments := []models.Shipment{{TrackingCode: "TRK1"}}

	shipment, ok := ResolveShipment(shipments, 1)
	require.True(t, ok)
	assert.Equal(t, "TRK1", shipment.TrackingCode)

	_, ok = ResolveShipment(shipments, 2)
	assert.False(t, ok)
}
