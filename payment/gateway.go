// Package payment is the client for the hosted-checkout payment gateway. The
// gateway owns all money computation: a line item is only a pre-registered
// price reference plus a quantity, and the returned session URL is where the
// customer actually pays.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/batibatii/textilecom-sub000/models"
)

// LineItem references a price the gateway already knows about.
type LineItem struct {
	PriceRef string `json:"price_ref"`
	Quantity int    `json:"quantity"`
}

// Session is a hosted payment session: an id to poll the order with later and
// a URL to redirect the customer to.
type Session struct {
	ID  string
	URL string
}

type sessionResponse struct {
	Session struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"session"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Gateway holds the env-derived gateway configuration.
type Gateway struct {
	storeID    int
	authKey    string
	apiURL     string
	successURL string
	cancelURL  string
	testMode   int
	httpClient *http.Client
}

// NewGatewayFromEnv picks the production endpoint, test mode if configured.
func NewGatewayFromEnv() (*Gateway, error) {
	storeID, _ := strconv.Atoi(os.Getenv("PAYMENT_STORE_ID"))
	g := &Gateway{
		storeID:    storeID,
		authKey:    os.Getenv("PAYMENT_AUTH_KEY"),
		apiURL:     os.Getenv("PAYMENT_API_URL"),
		successURL: os.Getenv("PAYMENT_SUCCESS_URL"),
		cancelURL:  os.Getenv("PAYMENT_CANCEL_URL"),
		httpClient: &http.Client{},
	}

	mode := os.Getenv("PAYMENT_MODE")
	if mode == "sandbox" || mode == "dev" {
		g.testMode = 1 // test mode even on the live endpoint
	}

	if g.storeID == 0 || g.authKey == "" || g.apiURL == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	return g, nil
}

// CreateSession requests a hosted payment session for the given line items.
// Every call creates a new session; there is no idempotency across calls.
// The gateway's own error message is returned verbatim, it is the one
// upstream message considered actionable for the caller.
func (g *Gateway) CreateSession(ctx context.Context, cartID string, items []LineItem, customer models.User) (*Session, error) {
	payload := map[string]interface{}{
		"method":  "create",
		"store":   g.storeID,
		"authkey": g.authKey,
		"session": map[string]interface{}{
			"cartid": cartID,
			"test":   g.testMode,
		},
		"items": items,
		"customer": map[string]interface{}{
			"name":  customer.Name,
			"email": customer.Email,
			"phone": customer.Phone,
			"address": map[string]string{
				"line1":    customer.Address.Line1,
				"line2":    customer.Address.Line2,
				"city":     customer.Address.City,
				"region":   customer.Address.State,
				"country":  customer.Address.Country,
				"postcode": customer.Address.PostalCode,
			},
		},
		"return": map[string]string{
			"success":   g.successURL,
			"cancelled": g.cancelURL,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var sr sessionResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse payment gateway response: %v", err)
	}

	if sr.Error != nil {
		return nil, fmt.Errorf("payment gateway error: %s", sr.Error.Message)
	}
	if sr.Session.URL == "" {
		return nil, fmt.Errorf("payment gateway returned empty session URL")
	}

	return &Session{ID: sr.Session.Ref, URL: sr.Session.URL}, nil
}
