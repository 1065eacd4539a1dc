package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarcangeli/spedman/internal/models"
)

type stubTrackingSource struct {
	raw   json.RawMessage
	ok    bool
	calls int
}

func (s *stubTrackingSource) Get(_ context.Context, _ string) (json.RawMessage, bool) {
	s.calls++
	return s.raw, s.ok
}

func TestClassifySentinelShortCircuit(t *testing.T) {
	source := &stubTrackingSource{}
	classifier := NewClassifier(source, nil)

	for _, tracking := range []string{"", models.TrackingUnavailable} {
		status, position := classifier.Classify(context.Background(), tracking)

		assert.Equal(t, models.StatusAwaitingShipment, status)
		assert.Empty(t, position)
	}

	assert.Zero(t, source.calls, "the sentinel path must never hit the carrier")
}

func TestClassifyResponseShapes(t *testing.T) {
	testCases := []struct {
		testName         string
		raw              string
		fetchFails       bool
		expectedStatus   models.DashboardStatus
		expectedPosition string
	}{
		{
			testName:       "fetch failure falls back to label created",
			fetchFails:     true,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "no tracking marker regardless of casing",
			raw:            `{"errore":"Tracciatura NON Disponibile al momento"}`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "object without movements key",
			raw:            `{"stato":"nessun risultato"}`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "object with explicitly empty movements",
			raw:            `{"listaMovimenti":[]}`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "empty list shape",
			raw:            `[]`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "list shape with empty movements",
			raw:            `[{"listaMovimenti":[]}]`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName:       "unexpected scalar body",
			raw:            `"boh"`,
			expectedStatus: models.StatusLabelCreated,
		},
		{
			testName: "movements in transit with titled location",
			raw: `{"listaMovimenti":[
				{"statoLavorazione":"Accettato","luogo":"TORINO"},
				{"statoLavorazione":"In transito","luogo":"MILANO CMP"}]}`,
			expectedStatus:   models.StatusInTransit,
			expectedPosition: "Milano Cmp",
		},
		{
			testName: "list shape with movements",
			raw: `[{"listaMovimenti":[
				{"statoLavorazione":"In lavorazione","luogo":"BOLOGNA"}]}]`,
			expectedStatus:   models.StatusInTransit,
			expectedPosition: "Bologna",
		},
		{
			testName: "delivery keyword on the latest movement",
			raw: `{"listaMovimenti":[
				{"statoLavorazione":"In consegna","luogo":"ROMA"},
				{"statoLavorazione":"Consegnato al destinatario","luogo":"ROMA"}]}`,
			expectedStatus:   models.StatusDelivered,
			expectedPosition: "Roma",
		},
		{
			testName: "delivery keyword only in older movements is ignored",
			raw: `{"listaMovimenti":[
				{"statoLavorazione":"Consegnato al punto di ritiro","luogo":"ROMA"},
				{"statoLavorazione":"In giacenza","luogo":"ROMA"}]}`,
			expectedStatus:   models.StatusInTransit,
			expectedPosition: "Roma",
		},
		{
			testName:       "movement without location",
			raw:            `{"listaMovimenti":[{"statoLavorazione":"In transito"}]}`,
			expectedStatus: models.StatusInTransit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			source := &stubTrackingSource{
				raw: json.RawMessage(tc.raw),
				ok:  !tc.fetchFails,
			}
			classifier := NewClassifier(source, nil)

			status, position := classifier.Classify(context.Background(), "1UW1RCW000396")

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedPosition, position)
			assert.Equal(t, 1, source.calls)
		})
	}
}

func TestClassifyCustomDeliveryKeywords(t *testing.T) {
	source := &stubTrackingSource{
		raw: json.RawMessage(`{"listaMovimenti":[{"statoLavorazione":"Recapitato","luogo":"NAPOLI"}]}`),
		ok:  true,
	}

	// With the default set "Recapitato" is not a delivery.
	status, _ := NewClassifier(source, nil).Classify(context.Background(), "TRK1")
	assert.Equal(t, models.StatusInTransit, status)

	status, position := NewClassifier(source, []string{"recapitato"}).Classify(context.Background(), "TRK1")
	assert.Equal(t, models.StatusDelivered, status)
	assert.Equal(t, "Napoli", position)
}

func TestNormalizeCarrierResponse(t *testing.T) {
	testCases := []struct {
		testName string
		raw      string
		expected responseKind
	}{
		{testName: "unparseable body", raw: `"boh"`, expected: responseNoData},
		{testName: "empty object", raw: `{}`, expected: responseNoData},
		{testName: "explicit outcome without movements", raw: `{"stato":"nessun risultato"}`, expected: responseEmpty},
		{testName: "empty movement list", raw: `{"listaMovimenti":[]}`, expected: responseEmpty},
		{testName: "populated history", raw: `{"listaMovimenti":[{"statoLavorazione":"In transito"}]}`, expected: responseWithMovements},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			outcome := normalizeCarrierResponse(json.RawMessage(tc.raw))
			assert.Equal(t, tc.expected, outcome.kind)
		})
	}
}

// Whatever the carrier answers, Classify must return one of the four
// statuses and never panic.
func TestClassifyTotality(t *testing.T) {
	bodies := []string{
		`null`, `{}`, `[]`, `0`, `"x"`, `{"listaMovimenti":null}`,
		`{"listaMovimenti":[{}]}`, `[{"stato":"?"}]`, `[[]]`,
	}

	valid := map[models.DashboardStatus]bool{
		models.StatusAwaitingShipment: true,
		models.StatusLabelCreated:     true,
		models.StatusInTransit:        true,
		models.StatusDelivered:        true,
	}

	for _, body := range bodies {
		source := &stubTrackingSource{raw: json.RawMessage(body), ok: true}
		classifier := NewClassifier(source, nil)

		status, _ := classifier.Classify(context.Background(), "TRK")

		assert.True(t, valid[status], "body %q produced unknown status %q", body, status)
	}
}
