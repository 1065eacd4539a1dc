package poste

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRaw(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"listaMovimenti":[{"statoLavorazione":"In transito","luogo":"MILANO"}]}`))
	}))
	defer srv.Close()

	client := NewClient(0, WithBaseURL(srv.URL))

	raw, err := client.FetchRaw(context.Background(), "1UW1RCW000396")
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	assert.Equal(t, "WEB", received["tipoRichiedente"])
	assert.Equal(t, "1UW1RCW000396", received["codiceSpedizione"])
	assert.Equal(t, float64(1), received["periodoRicerca"])
}

func TestFetchRawNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(0, WithBaseURL(srv.URL))

	_, err := client.FetchRaw(context.Background(), "1UW1RCW000396")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	// Tracking codes never appear whole in errors or logs.
	assert.NotContains(t, err.Error(), "1UW1RCW000396")
}

func TestFetchRawInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>manutenzione</html>"))
	}))
	defer srv.Close()

	client := NewClient(0, WithBaseURL(srv.URL))

	_, err := client.FetchRaw(context.Background(), "1UW1RCW000396")
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "N/A", mask(""))
	assert.Equal(t, "***", mask("ABC"))
	assert.Equal(t, "1UW...396", mask("1UW1RCW000396"))
}
