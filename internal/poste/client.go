// Package poste implements the carrier lookup against the public Poste
// Italiane "dove quando" endpoint.
package poste

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
)

const (
	defaultBaseURL = "https://www.poste.it"
	searchPath     = "/online/dovequando/DQ-REST/ricercasemplice"
	requestTimeout = 10 * time.Second
)

type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

type Option func(*Client)

// WithBaseURL overrides the carrier endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func NewClient(retries int, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.Logger = nil
	rc.HTTPClient.Timeout = requestTimeout

	client := &Client{
		baseURL: defaultBaseURL,
		http:    rc,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type searchRequest struct {
	TipoRichiedente  string `json:"tipoRichiedente"`
	CodiceSpedizione string `json:"codiceSpedizione"`
	PeriodoRicerca   int    `json:"periodoRicerca"`
}

// FetchRaw downloads the raw tracking JSON for a shipment. The response
// shape is not normalized here: the endpoint answers with an object or a
// list depending on the shipment state, and the classifier owns that logic.
func (c *Client) FetchRaw(ctx context.Context, trackingID string) (raw json.RawMessage, err error) {
	done := logger.Traced("poste.ricercasemplice")
	defer func() { done(err) }()

	payload, err := json.Marshal(searchRequest{
		TipoRichiedente:  "WEB",
		CodiceSpedizione: trackingID,
		PeriodoRicerca:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// The endpoint only answers requests that look like the public site.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Origin", "https://www.poste.it")
	req.Header.Set("Referer", "https://www.poste.it/cerca/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking request failed (tracking=%s): %w", mask(trackingID), err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracking lookup returned HTTP %d (tracking=%s)", res.StatusCode, mask(trackingID))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking response: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("tracking response is not valid JSON (tracking=%s)", mask(trackingID))
	}

	if len(body) == 0 {
		logger.Log.Warn("empty tracking response", zap.String("tracking", mask(trackingID)))
	}

	return body, nil
}

func mask(code string) string {
	if code == "" {
		return "N/A"
	}
	if len(code) <= 6 {
		return "***"
	}
	return code[:3] + "..." + code[len(code)-3:]
}
