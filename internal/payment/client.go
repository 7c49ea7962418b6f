// Package payment creates payment preferences against a MercadoPago-style
// API. An unconfigured access token is a documented degraded mode, not an
// error: the client answers with a mock preference and a message, and the
// caller must not redirect.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrAPI wraps non-2xx answers from the payment API. The caller surfaces a
// retry prompt and leaves the cart untouched.
var ErrAPI = errors.New("payment api error")

// MockPreferenceID marks a degraded-mode preference.
const MockPreferenceID = "mock-preference-id"

const unconfiguredMessage = "Payment integration is not configured. Set PAYMENT_ACCESS_TOKEN to enable real payments."

// Cents renders an integer cent amount as a decimal JSON number, keeping
// money arithmetic in integers and decimals on the wire only.
type Cents int64

func (c Cents) MarshalJSON() ([]byte, error) {
	neg := ""
	v := int64(c)
	if v < 0 {
		neg = "-"
		v = -v
	}
	return []byte(fmt.Sprintf("%s%d.%02d", neg, v/100, v%100)), nil
}

// Item is one preference line, derived 1:1 from a cart line.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice Cents  `json:"unit_price"`
}

// Preference is the checkout answer. A nil InitPoint means degraded mode:
// show Message, do not redirect.
type Preference struct {
	ID        string  `json:"id"`
	InitPoint *string `json:"init_point"`
	Message   string  `json:"message,omitempty"`
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceRequest struct {
	Items      []Item   `json:"items"`
	BackURLs   backURLs `json:"back_urls"`
	AutoReturn string   `json:"auto_return"`
}

// Client talks to the payment-preference API.
type Client struct {
	httpClient  *http.Client
	apiURL      string
	accessToken string
	siteURL     string
	logger      *log.Logger
}

func NewClient(apiURL, accessToken, siteURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		apiURL:      apiURL,
		accessToken: accessToken,
		siteURL:     siteURL,
		logger:      logger,
	}
}

// CreatePreference registers the items and returns the redirect target, or
// the degraded mock when the integration is unconfigured.
func (c *Client) CreatePreference(ctx context.Context, items []Item) (*Preference, error) {
	if c.accessToken == "" {
		c.logger.Printf("payment: access token not configured, returning mock preference")
		return &Preference{ID: MockPreferenceID, InitPoint: nil, Message: unconfiguredMessage}, nil
	}

	body, err := json.Marshal(preferenceRequest{
		Items: items,
		BackURLs: backURLs{
			Success: c.siteURL + "/checkout/success",
			Failure: c.siteURL + "/checkout/failure",
			Pending: c.siteURL + "/checkout/pending",
		},
		AutoReturn: "approved",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("payment: preference rejected status=%d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrAPI, resp.StatusCode)
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("decode preference: %w", err)
	}
	return &pref, nil
}
