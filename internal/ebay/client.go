// Package ebay implements the marketplace collaborator on top of the
// legacy Trading API (XML over POST).
package ebay

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
	"github.com/dmarcangeli/spedman/internal/utils"
)

const (
	defaultEndpoint    = "https://api.ebay.com/ws/api.dll"
	siteID             = "101"
	compatibilityLevel = "1131"
	carrierName        = "Poste Italiane"

	// titleLimit keeps item titles short enough for the dashboard table.
	titleLimit = 45

	// tokenWarningDays is how far ahead the startup check warns about the
	// auth token expiring.
	tokenWarningDays = 60
)

var ErrMissingToken = errors.New("ebay auth token is not configured")

type Config struct {
	Token   string
	AppID   string
	DevID   string
	CertID  string
	Retries int
}

type Client struct {
	cfg      Config
	endpoint string
	http     *retryablehttp.Client
}

type Option func(*Client)

// WithEndpoint overrides the Trading API endpoint, used by tests.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

func NewClient(cfg Config, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second

	client := &Client{
		cfg:      cfg,
		endpoint: defaultEndpoint,
		http:     rc,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type xmlAddress struct {
	Name       string `xml:"Name"`
	Street1    string `xml:"Street1"`
	Street2    string `xml:"Street2"`
	CityName   string `xml:"CityName"`
	PostalCode string `xml:"PostalCode"`
	Phone      string `xml:"Phone"`
}

type xmlTransaction struct {
	Title string `xml:"Item>Title"`
}

type xmlOrder struct {
	OrderID            string           `xml:"OrderID"`
	BuyerUserID        string           `xml:"BuyerUserID"`
	CreatedTime        string           `xml:"CreatedTime"`
	ShippedTime        string           `xml:"ShippedTime"`
	ActualDeliveryTime string           `xml:"ActualDeliveryTime"`
	TrackingNumber     string           `xml:"ShippingDetails>ShipmentTrackingDetails>ShipmentTrackingNumber"`
	ShippingAddress    *xmlAddress      `xml:"ShippingAddress"`
	Transactions       []xmlTransaction `xml:"TransactionArray>Transaction"`
}

type apiResponse struct {
	Ack          string     `xml:"Ack"`
	ShortMessage string     `xml:"Errors>ShortMessage"`
	LongMessage  string     `xml:"Errors>LongMessage"`
	Orders       []xmlOrder `xml:"OrderArray>Order"`

	HardExpirationTime string `xml:"HardExpirationTime"`
	ExpirationTime     string `xml:"ExpirationTime"`
}

// FetchOrders downloads the seller's orders of the last `days` days and
// partitions them: never shipped goes to awaiting, shipped but not delivered
// to in-transit. Orders the marketplace already marks delivered are dropped
// so they never clutter the dashboard.
func (c *Client) FetchOrders(ctx context.Context, days int) (awaiting, inTransit []models.Order, err error) {
	done := logger.Traced("ebay.GetOrders")
	defer func() { done(err) }()

	if c.cfg.Token == "" {
		return nil, nil, ErrMissingToken
	}

	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<GetOrdersRequest xmlns="urn:ebay:apis:eBLBaseComponents">
  <RequesterCredentials><eBayAuthToken>%s</eBayAuthToken></RequesterCredentials>
  <NumberOfDays>%d</NumberOfDays>
  <OrderRole>Seller</OrderRole>
  <DetailLevel>ReturnAll</DetailLevel>
</GetOrdersRequest>`, c.cfg.Token, days)

	res, err := c.call(ctx, "GetOrders", body)
	if err != nil {
		return nil, nil, err
	}

	for _, order := range res.Orders {
		if order.OrderID == "" || order.ShippingAddress == nil {
			continue
		}

		parsed := models.Order{
			ID:        order.OrderID,
			Buyer:     order.BuyerUserID,
			Date:      formatDisplayDate(order.CreatedTime),
			Title:     orderTitle(order.Transactions),
			Recipient: parseAddress(*order.ShippingAddress),
			Tracking:  normalizeTracking(order.TrackingNumber),
			ShippedAt: formatDisplayDate(order.ShippedTime),
		}

		switch {
		case order.ShippedTime == "":
			awaiting = append(awaiting, parsed)
		case order.ActualDeliveryTime == "":
			inTransit = append(inTransit, parsed)
		default:
			logger.Log.Debug("order already delivered, skipped",
				zap.String("orderID", order.OrderID))
		}
	}

	logger.Log.Info("orders downloaded",
		zap.Int("awaiting", len(awaiting)),
		zap.Int("inTransit", len(inTransit)),
	)

	return awaiting, inTransit, nil
}

// UploadTracking marks an order as shipped and attaches its tracking number
// via CompleteSale. An Ack=Failure counts as an error even on HTTP 200.
func (c *Client) UploadTracking(ctx context.Context, orderID, tracking string) (err error) {
	done := logger.Traced("ebay.CompleteSale")
	defer func() { done(err) }()

	if c.cfg.Token == "" {
		return ErrMissingToken
	}

	cleanID := strings.ReplaceAll(strings.TrimSpace(orderID), " ", "")

	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<CompleteSaleRequest xmlns="urn:ebay:apis:eBLBaseComponents">
  <RequesterCredentials><eBayAuthToken>%s</eBayAuthToken></RequesterCredentials>
  <OrderID>%s</OrderID>
  <Shipped>true</Shipped>
  <Shipment>
    <ShipmentTrackingDetails>
      <ShipmentTrackingNumber>%s</ShipmentTrackingNumber>
      <ShippingCarrierUsed>%s</ShippingCarrierUsed>
    </ShipmentTrackingDetails>
  </Shipment>
</CompleteSaleRequest>`, c.cfg.Token, cleanID, tracking, carrierName)

	if _, err = c.call(ctx, "CompleteSale", body); err != nil {
		return err
	}

	logger.Log.Info("tracking uploaded to marketplace",
		zap.String("orderID", cleanID),
		zap.String("tracking", tracking),
	)

	return nil
}

// TokenExpiryWarning checks how long the auth token remains valid and
// returns a warning string when it is expired or expires within 60 days.
// The check is best effort: it needs the optional developer keys and any
// failure returns an empty warning, never an error that blocks startup.
func (c *Client) TokenExpiryWarning(ctx context.Context) string {
	if c.cfg.Token == "" || c.cfg.AppID == "" || c.cfg.DevID == "" || c.cfg.CertID == "" {
		return ""
	}

	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<GetTokenStatusRequest xmlns="urn:ebay:apis:eBLBaseComponents">
  <RequesterCredentials><eBayAuthToken>%s</eBayAuthToken></RequesterCredentials>
</GetTokenStatusRequest>`, c.cfg.Token)

	res, err := c.call(ctx, "GetTokenStatus", body)
	if err != nil {
		logger.Log.Warn("token expiry check failed, ignored", zap.Error(err))
		return ""
	}

	raw := res.HardExpirationTime
	if raw == "" {
		raw = res.ExpirationTime
	}
	if raw == "" {
		return ""
	}

	raw = strings.Split(strings.TrimSuffix(raw, "Z"), ".")[0]
	expiry, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		logger.Log.Warn("unparseable token expiry", zap.String("raw", raw))
		return ""
	}

	days := int(time.Until(expiry).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("Token eBay scaduto da %d giorni. Rigeneralo subito.", -days)
	case days < tokenWarningDays:
		return fmt.Sprintf("Il token eBay scade tra %d giorni (%s).", days, expiry.Format("02/01/2006"))
	}

	logger.Log.Info("token expiry check ok", zap.Int("daysLeft", days))
	return ""
}

// call posts one Trading API request and decodes the shared response
// envelope, turning Ack=Failure into an error.
func (c *Client) call(ctx context.Context, callName, body string) (*apiResponse, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", callName, err)
	}

	req.Header.Set("X-EBAY-API-SITEID", siteID)
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", compatibilityLevel)
	req.Header.Set("X-EBAY-API-CALL-NAME", callName)
	req.Header.Set("Content-Type", "text/xml")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", callName, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", callName, err)
	}

	var parsed apiResponse
	if err := xml.Unmarshal(payload, &parsed); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("invalid %s response (HTTP %d)", callName, res.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse %s response: %w", callName, err)
	}

	if parsed.Ack == "Failure" {
		message := parsed.LongMessage
		if message == "" {
			message = parsed.ShortMessage
		}
		if message == "" {
			message = "no error detail"
		}
		return nil, fmt.Errorf("%s rejected by marketplace: %s", callName, message)
	}

	return &parsed, nil
}

func parseAddress(addr xmlAddress) models.Recipient {
	address := addr.Street1
	if addr.Street2 != "" {
		address += " " + addr.Street2
	}
	return models.Recipient{
		Name:       addr.Name,
		Address:    address,
		City:       addr.CityName,
		PostalCode: addr.PostalCode,
		Phone:      utils.NormalizePhone(addr.Phone),
	}
}

func orderTitle(transactions []xmlTransaction) string {
	title := "Oggetto eBay"
	if len(transactions) > 0 && transactions[0].Title != "" {
		title = transactions[0].Title
	}
	if runes := []rune(title); len(runes) > titleLimit {
		title = string(runes[:titleLimit]) + ".."
	}
	return title
}

func normalizeTracking(tracking string) string {
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		return models.TrackingUnavailable
	}
	return tracking
}

// formatDisplayDate turns 2026-01-06T15:30:00.000Z into "06/01 15:30".
// Unparseable values pass through untouched so at least something shows.
func formatDisplayDate(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	if len(isoDate) < 16 {
		return "??"
	}

	parts := strings.SplitN(isoDate, "T", 2)
	if len(parts) != 2 || len(parts[1]) < 5 {
		return isoDate
	}

	dateParts := strings.Split(parts[0], "-")
	if len(dateParts) != 3 {
		return isoDate
	}

	return fmt.Sprintf("%s/%s %s", dateParts[2], dateParts[1], parts[1][:5])
}
