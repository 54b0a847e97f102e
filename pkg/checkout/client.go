// Package checkout is a thin client for the hosted-payment provider. It
// creates checkout sessions over the provider's REST API and verifies the
// signatures the provider attaches to webhook deliveries.
package checkout

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Config holds the provider credentials and redirect URLs.
type Config struct {
	APIURL        string
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

// LineItem is one purchasable line of a checkout session. Amounts are in
// integer minor currency units (cents) as the provider requires.
type LineItem struct {
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
	Quantity   int    `json:"quantity"`
}

// SessionRequest is the payload for creating a hosted checkout session.
// The client reference ID carries our order ID so the webhook can correlate
// the payment back to the order.
type SessionRequest struct {
	Mode               string     `json:"mode"`
	PaymentMethodTypes []string   `json:"payment_method_types"`
	ClientReferenceID  string     `json:"client_reference_id"`
	CustomerEmail      string     `json:"customer_email"`
	LineItems          []LineItem `json:"line_items"`
	SuccessURL         string     `json:"success_url"`
	CancelURL          string     `json:"cancel_url"`
}

// Session is the provider's response: the hosted page the buyer is
// redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type sessionError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the provider's REST API.
type Client struct {
	http *resty.Client
	cfg  Config
}

// NewClient creates a provider client from configuration.
func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		cfg:  cfg,
	}
}

// CreateSession creates a hosted checkout session and returns its redirect
// URL.
func (c *Client) CreateSession(req SessionRequest) (*Session, error) {
	if req.SuccessURL == "" {
		req.SuccessURL = c.cfg.SuccessURL
	}
	if req.CancelURL == "" {
		req.CancelURL = c.cfg.CancelURL
	}

	var session Session
	var apiErr sessionError
	resp, err := c.http.R().
		SetBody(req).
		SetResult(&session).
		SetError(&apiErr).
		Post("/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("checkout session request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("checkout session rejected with status %d: %s",
				resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("checkout session rejected with status %d: %s",
			resp.StatusCode(), resp.String())
	}
	if session.URL == "" {
		return nil, fmt.Errorf("checkout session response missing redirect URL")
	}
	return &session, nil
}

// MinorUnits converts a price in major currency units to integer minor
// units (10.00 -> 1000), rounding half away from zero. Decimal arithmetic
// avoids the float drift of price*100.
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
