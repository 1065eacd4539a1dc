package services

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmarcangeli/spedman/internal/models"
)

// noTrackingMarker is free text the carrier embeds when a shipment is not
// yet known to its network.
const noTrackingMarker = "tracciatura non disponibile"

// DefaultDeliveryKeywords are the substrings that mark a movement as a
// delivery. The carrier reports status as free text, so the set is
// configurable: a missed keyword only delays the delivered notification,
// while a wrong one archives an order that is still travelling.
var DefaultDeliveryKeywords = []string{"consegnato", "consegnata", "delivered"}

// rawTrackingSource is what the classifier needs from the tracking cache.
type rawTrackingSource interface {
	Get(ctx context.Context, trackingID string) (json.RawMessage, bool)
}

// Classifier reduces raw carrier responses to a lifecycle status plus a
// human-readable last known location.
type Classifier struct {
	source   rawTrackingSource
	keywords []string
}

func NewClassifier(source rawTrackingSource, deliveryKeywords []string) *Classifier {
	if len(deliveryKeywords) == 0 {
		deliveryKeywords = DefaultDeliveryKeywords
	}
	return &Classifier{
		source:   source,
		keywords: deliveryKeywords,
	}
}

// Classify derives (status, location) for a tracking code.
//
// The sentinel and the empty string short-circuit to AWAITING_SHIPMENT with
// no network call. Everything else goes through the tracking cache and the
// ordered rule set below; absence of evidence is read as "label exists, not
// scanned yet", never as an error, because the carrier cannot distinguish
// "no data yet" from "not found".
func (c *Classifier) Classify(ctx context.Context, trackingID string) (models.DashboardStatus, string) {
	if trackingID == "" || trackingID == models.TrackingUnavailable {
		return models.StatusAwaitingShipment, ""
	}

	raw, ok := c.source.Get(ctx, trackingID)
	if !ok {
		return models.StatusLabelCreated, ""
	}

	if strings.Contains(strings.ToLower(string(raw)), noTrackingMarker) {
		return models.StatusLabelCreated, ""
	}

	outcome := normalizeCarrierResponse(raw)

	switch outcome.kind {
	case responseNoData:
		return models.StatusLabelCreated, ""
	case responseEmpty:
		return models.StatusLabelCreated, ""
	}

	if c.isDelivery(outcome.last.Status) {
		return models.StatusDelivered, formatLocation(outcome.last.Place)
	}

	return models.StatusInTransit, formatLocation(outcome.last.Place)
}

func (c *Classifier) isDelivery(statusText string) bool {
	lowered := strings.ToLower(statusText)
	for _, keyword := range c.keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func formatLocation(place string) string {
	place = strings.TrimSpace(place)
	if place == "" {
		return ""
	}
	return cases.Title(language.Italian).String(strings.ToLower(place))
}

type responseKind int

const (
	// responseNoData covers malformed bodies and unknown shapes.
	responseNoData responseKind = iota
	// responseEmpty is a parseable body with no movements to show: either
	// an explicitly empty movement list or a bare outcome field.
	responseEmpty
	// responseWithMovements carries the most recent movement.
	responseWithMovements
)

// carrierMovement is one entry of the carrier's movement history.
type carrierMovement struct {
	Status string `json:"statoLavorazione"`
	Place  string `json:"luogo"`
	DataMs int64  `json:"dataOra"`
}

// carrierBody is the slice of a carrier response the classifier understands.
// The movements key is a pointer so an absent list and an explicitly empty
// one stay distinguishable.
type carrierBody struct {
	Stato     string             `json:"stato"`
	Movements *[]carrierMovement `json:"listaMovimenti"`
}

type carrierOutcome struct {
	kind responseKind
	last carrierMovement
}

// normalizeCarrierResponse folds the carrier's inconsistent shapes (object
// or list, movements absent, empty or populated) into a tagged outcome so
// the classification rules read top to bottom.
func normalizeCarrierResponse(raw json.RawMessage) carrierOutcome {
	var body carrierBody

	if err := json.Unmarshal(raw, &body); err != nil {
		// Some responses arrive as a list of result objects; the first one
		// is the shipment that was asked for.
		var list []carrierBody
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return carrierOutcome{kind: responseNoData}
		}
		body = list[0]
	}

	if body.Movements == nil {
		if body.Stato != "" {
			// The search answered with an outcome field instead of a
			// movement history: it completed and found nothing to report.
			return carrierOutcome{kind: responseEmpty}
		}
		return carrierOutcome{kind: responseNoData}
	}

	movements := *body.Movements
	if len(movements) == 0 {
		return carrierOutcome{kind: responseEmpty}
	}

	// The last entry of the list is the most recent movement.
	return carrierOutcome{
		kind: responseWithMovements,
		last: movements[len(movements)-1],
	}
}
