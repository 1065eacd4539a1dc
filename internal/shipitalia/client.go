// Package shipitalia implements the label provider collaborator.
package shipitalia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
)

const (
	defaultBaseURL  = "https://shipitalia.com"
	defaultLabelDir = "etichette"

	// Field limits the provider silently rejects payloads over.
	nameLimit   = 40
	cityLimit   = 36
	postalLimit = 10
)

var (
	ErrMissingAPIKey  = errors.New("shipitalia api key is not configured")
	ErrNoTrackingCode = errors.New("provider did not return a tracking code")
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

type Client struct {
	apiKey   string
	baseURL  string
	labelDir string
	http     *retryablehttp.Client
}

type Option func(*Client)

// WithBaseURL overrides the provider endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithLabelDir overrides where downloaded PDFs are stored.
func WithLabelDir(dir string) Option {
	return func(c *Client) { c.labelDir = dir }
}

func NewClient(apiKey string, retries int, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second

	client := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		labelDir: defaultLabelDir,
		http:     rc,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type labelResponse struct {
	Data struct {
		TrackingCode string `json:"trackingCode"`
		LabelURL     string `json:"labelUrl"`
	} `json:"data"`
}

// GenerateLabel creates a shipping label and returns its tracking code and
// PDF location. The payload is sanitized first: the provider truncates
// nothing itself, it just rejects the request.
func (c *Client) GenerateLabel(ctx context.Context, req models.LabelRequest) (result *models.LabelResult, err error) {
	done := logger.Traced("shipitalia.GenerateLabel")
	defer func() { done(err) }()

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(sanitizeRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode label payload: %w", err)
	}

	res, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/generate-label", payload)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("label API returned HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed labelResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse label response: %w", err)
	}

	if parsed.Data.TrackingCode == "" {
		return nil, ErrNoTrackingCode
	}

	return &models.LabelResult{
		TrackingCode: parsed.Data.TrackingCode,
		LabelURL:     parsed.Data.LabelURL,
	}, nil
}

// ListShipments downloads the most recent page of shipments. The `data`
// field arrives either as a plain list or wrapped in a pagination object, so
// both shapes are accepted.
func (c *Client) ListShipments(ctx context.Context, limit int) (shipments []models.Shipment, err error) {
	done := logger.Traced("shipitalia.ListShipments")
	defer func() { done(err) }()

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	url := fmt.Sprintf("%s/api/shipments?page=1&limit=%d", c.baseURL, limit)
	res, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shipment list returned HTTP %d", res.StatusCode)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to parse shipment list: %w", err)
	}

	if len(envelope.Data) == 0 {
		return nil, nil
	}

	var list []models.Shipment
	if err := json.Unmarshal(envelope.Data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Shipments []models.Shipment `json:"shipments"`
		Items     []models.Shipment `json:"items"`
	}
	if err := json.Unmarshal(envelope.Data, &wrapped); err != nil {
		return nil, fmt.Errorf("unrecognized shipment list shape: %w", err)
	}

	if wrapped.Shipments != nil {
		return wrapped.Shipments, nil
	}
	return wrapped.Items, nil
}

// DownloadPDF saves a label PDF under the label directory and returns its
// path. The tracking code is sanitized before it becomes a file name.
func (c *Client) DownloadPDF(ctx context.Context, url, tracking string) (path string, err error) {
	done := logger.Traced("shipitalia.DownloadPDF")
	defer func() { done(err) }()

	res, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pdf download returned HTTP %d", res.StatusCode)
	}

	if err := os.MkdirAll(c.labelDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create label directory: %w", err)
	}

	safe := unsafeFilenameChars.ReplaceAllString(tracking, "_")
	path = filepath.Join(c.labelDir, safe+".pdf")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create pdf file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, res.Body); err != nil {
		return "", fmt.Errorf("failed to write pdf file: %w", err)
	}

	logger.Log.Info("label pdf saved", zap.String("path", path))

	return path, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var payload interface{}
	if body != nil {
		payload = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return res, nil
}

// sanitizeRequest strips and truncates address fields to the provider's
// limits. Strip happens before the cut so leading spaces never cost real
// characters.
func sanitizeRequest(req models.LabelRequest) models.LabelRequest {
	req.Sender = sanitizeAddress(req.Sender)
	req.Recipient = sanitizeAddress(req.Recipient)
	return req
}

func sanitizeAddress(addr models.Recipient) models.Recipient {
	addr.Name = clip(addr.Name, nameLimit)
	addr.Address = clip(addr.Address, nameLimit)
	addr.City = clip(addr.City, cityLimit)
	addr.PostalCode = clip(addr.PostalCode, postalLimit)
	return addr
}

func clip(value string, limit int) string {
	value = strings.TrimSpace(value)
	if runes := []rune(value); len(runes) > limit {
		return string(runes[:limit])
	}
	return value
}
