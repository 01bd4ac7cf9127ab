package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"caelis-storefront/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) RazorpayClient {
	return NewRazorpayClient(&config.Razorpay{
		BaseApiURL: baseURL,
		KeyID:      "rzp_test_key",
		KeySecret:  "rzp_test_secret",
	})
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotAuthUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)
		gotAuthUser, _, _ = r.BasicAuth()

		var payload struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotAmount = payload.Amount

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   payload.Amount,
			"currency": payload.Currency,
			"receipt":  payload.Receipt,
			"status":   "created",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	order, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.NewFromFloat(500.50),
		Currency: "INR",
		Receipt:  "receipt_1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50050), gotAmount)
	assert.Equal(t, "rzp_test_key", gotAuthUser)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, int64(50050), order.AmountMinor)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.Zero,
		Currency: "INR",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.False(t, called, "no gateway call for invalid amount")
}

func TestCreateOrderRejectsUnsupportedCurrency(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")
	_, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.NewFromInt(100),
		Currency: "JPY",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"server error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
	})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrderBadRequestMapsToInvalidRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"amount too large"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateOrderNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(srv.URL)
	_, err := c.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
	})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
