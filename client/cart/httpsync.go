package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/batibatii/textilecom-sub000/models"
)

// HTTPSyncer talks to the storefront cart API. The http.Client's cookie jar
// carries the session cookie the login flow set, so requests authenticate the
// same way the browser does.
type HTTPSyncer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSyncer(baseURL string, client *http.Client) *HTTPSyncer {
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{Jar: jar}
	}
	return &HTTPSyncer{baseURL: baseURL, client: client}
}

type cartBody struct {
	Items []models.CartItem `json:"items"`
}

func (s *HTTPSyncer) Save(ctx context.Context, items []models.CartItem) error {
	var resp cartBody
	return s.do(ctx, http.MethodPut, "/cart", cartBody{Items: items}, &resp)
}

func (s *HTTPSyncer) Merge(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	var resp cartBody
	if err := s.do(ctx, http.MethodPost, "/cart/merge", cartBody{Items: items}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (s *HTTPSyncer) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode cart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build cart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("cart request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("cart request %s %s: status %d", method, path, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode cart response: %w", err)
	}
	return nil
}
