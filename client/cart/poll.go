package cartclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/batibatii/textilecom-sub000/models"
)

// Order materialization is asynchronous: the payment return page lands before
// the webhook has necessarily created the order row, so the confirmation view
// polls until the order shows up or the attempt budget runs out.

// ErrOrderNotFound means the order row does not exist yet. A fetch
// implementation returns it to keep the poll going.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderPending means the attempt budget ran out with the order still not
// materialized. The payment itself may well have succeeded; the caller should
// show a "processing" state rather than a failure.
var ErrOrderPending = errors.New("order not materialized yet")

const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollAttempts = 10
)

// PollOrder fetches until the order appears, the context is cancelled, or
// maxAttempts fetches have all come back ErrOrderNotFound. Any other fetch
// error is a hard failure and stops the poll immediately.
func PollOrder(ctx context.Context, fetch func(ctx context.Context) (*models.Order, error), interval time.Duration, maxAttempts int) (*models.Order, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollAttempts
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		order, err := fetch(ctx)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		if attempt >= maxAttempts {
			return nil, ErrOrderPending
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// FetchOrderBySession reads the order materialized for a checkout session.
// A 404 maps to ErrOrderNotFound so it can drive PollOrder.
func (s *HTTPSyncer) FetchOrderBySession(ctx context.Context, sessionID string) (*models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/orders/session/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order request: status %d", res.StatusCode)
	}

	var order models.Order
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}
