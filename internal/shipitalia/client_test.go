package shipitalia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarcangeli/spedman/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", 0, WithBaseURL(srv.URL), WithLabelDir(t.TempDir()))
}

func TestGenerateLabel(t *testing.T) {
	var received models.LabelRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-label", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"trackingCode":"1UW1RCW000396","labelUrl":"https://cdn/label.pdf"}}`))
	})

	req := models.LabelRequest{
		Weight: 1.5,
		Recipient: models.Recipient{
			Name:       "  " + strings.Repeat("x", nameLimit+5),
			City:       "Torino",
			PostalCode: "10121",
		},
	}

	result, err := client.GenerateLabel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "1UW1RCW000396", result.TrackingCode)
	assert.Equal(t, "https://cdn/label.pdf", result.LabelURL)

	// The payload goes out already sanitized.
	assert.Len(t, []rune(received.Recipient.Name), nameLimit)
	assert.False(t, strings.HasPrefix(received.Recipient.Name, " "))
}

func TestGenerateLabelNoTrackingCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"trackingCode":"","labelUrl":""}}`))
	})

	_, err := client.GenerateLabel(context.Background(), models.LabelRequest{})
	assert.ErrorIs(t, err, ErrNoTrackingCode)
}

func TestGenerateLabelHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"peso non valido"}`))
	})

	_, err := client.GenerateLabel(context.Background(), models.LabelRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestGenerateLabelMissingKey(t *testing.T) {
	client := NewClient("", 0)

	_, err := client.GenerateLabel(context.Background(), models.LabelRequest{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestListShipmentsShapes(t *testing.T) {
	testCases := []struct {
		testName string
		body     string
		expected int
	}{
		{
			testName: "plain list",
			body:     `{"data":[{"trackingCode":"TRK1"},{"trackingCode":"TRK2"}]}`,
			expected: 2,
		},
		{
			testName: "wrapped in shipments",
			body:     `{"data":{"shipments":[{"trackingCode":"TRK1"}],"total":1}}`,
			expected: 1,
		},
		{
			testName: "wrapped in items",
			body:     `{"data":{"items":[{"trackingCode":"TRK1"}]}}`,
			expected: 1,
		},
		{
			testName: "empty data",
			body:     `{"data":[]}`,
			expected: 0,
		},
		{
			testName: "missing data",
			body:     `{}`,
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/shipments", r.URL.Path)
				assert.Equal(t, "15", r.URL.Query().Get("limit"))
				_, _ = w.Write([]byte(tc.body))
			})

			shipments, err := client.ListShipments(context.Background(), 15)
			require.NoError(t, err)
			assert.Len(t, shipments, tc.expected)
		})
	}
}

func TestDownloadPDFSanitizesFilename(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	path, err := client.DownloadPDF(context.Background(), client.baseURL+"/labels/x", "TRK/..\\1")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, "TRK____1.pdf"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(content))
}

func TestSanitizeAddress(t *testing.T) {
	addr := sanitizeAddress(models.Recipient{
		Name:       " Mario Rossi ",
		Address:    strings.Repeat("v", nameLimit+1),
		City:       strings.Repeat("c", cityLimit+4),
		PostalCode: "10121-EXTRA",
	})

	assert.Equal(t, "Mario Rossi", addr.Name)
	assert.Len(t, []rune(addr.Address), nameLimit)
	assert.Len(t, []rune(addr.City), cityLimit)
	assert.Len(t, []rune(addr.PostalCode), postalLimit)
}
