package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batibatii/textilecom-sub000/models"
)

func testGateway(apiURL string) *Gateway {
	return &Gateway{
		storeID:    12345,
		authKey:    "key",
		apiURL:     apiURL,
		successURL: "https://shop.example/checkout/success",
		cancelURL:  "https://shop.example/checkout/cancel",
		testMode:   1,
		httpClient: &http.Client{},
	}
}

func TestCreateSessionSendsLineItemsAndCustomer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"session":{"ref":"sess-1","url":"https://pay.example/sess-1"}}`))
	}))
	defer srv.Close()

	user := models.User{
		Name:  "Ada",
		Email: "ada@example.com",
		Address: models.Address{
			Line1: "1 Main St", City: "Berlin", PostalCode: "10115", Country: "DE",
		},
	}
	session, err := testGateway(srv.URL).CreateSession(context.Background(), "cart-1",
		[]LineItem{{PriceRef: "price_tee", Quantity: 2}}, user)
	require.NoError(t, err)

	assert.Equal(t, "sess-1", session.ID)
	assert.Equal(t, "https://pay.example/sess-1", session.URL)

	assert.Equal(t, "create", got["method"])
	assert.Equal(t, float64(1), got["session"].(map[string]any)["test"])
	items := got["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "price_tee", items[0].(map[string]any)["price_ref"])
	assert.Equal(t, "ada@example.com", got["customer"].(map[string]any)["email"])
}

func TestCreateSessionSurfacesGatewayMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"code":"E04","message":"Invalid store id"}}`))
	}))
	defer srv.Close()

	_, err := testGateway(srv.URL).CreateSession(context.Background(), "cart-1", nil, models.User{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid store id")
}

func TestCreateSessionRejectsEmptySessionURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"session":{"ref":"sess-1","url":""}}`))
	}))
	defer srv.Close()

	_, err := testGateway(srv.URL).CreateSession(context.Background(), "cart-1", nil, models.User{})
	assert.Error(t, err)
}

func TestNewGatewayFromEnvRequiresConfig(t *testing.T) {
	t.Setenv("PAYMENT_STORE_ID", "")
	t.Setenv("PAYMENT_AUTH_KEY", "")
	t.Setenv("PAYMENT_API_URL", "")

	_, err := NewGatewayFromEnv()
	assert.Error(t, err)

	t.Setenv("PAYMENT_STORE_ID", "12345")
	t.Setenv("PAYMENT_AUTH_KEY", "key")
	t.Setenv("PAYMENT_API_URL", "https://gateway.example/order")
	t.Setenv("PAYMENT_MODE", "sandbox")

	g, err := NewGatewayFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1, g.testMode)
}
