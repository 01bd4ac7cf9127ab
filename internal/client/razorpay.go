package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"caelis-storefront/internal/config"
	"caelis-storefront/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrGatewayUnavailable covers network, auth and gateway-side failures.
	ErrGatewayUnavailable = errors.New("razorpay: gateway unavailable")
	// ErrInvalidRequest means the gateway rejected the order parameters.
	ErrInvalidRequest = errors.New("razorpay: invalid request")
)

// CreateOrderParams carries amounts in major currency units; conversion
// to the gateway's minor units happens inside the client and nowhere else.
type CreateOrderParams struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

type GatewayOrder struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	Receipt     string
}

type RazorpayClient interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error)
}

type razorpayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

type razorpayOrderResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	if params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if !model.ValidCurrency(params.Currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", ErrInvalidRequest, params.Currency)
	}

	payload := map[string]interface{}{
		"amount":   params.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), // rupees -> paise
		"currency": params.Currency,
		"receipt":  params.Receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, string(b))
		}
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrGatewayUnavailable, resp.StatusCode, string(b))
	}

	var result razorpayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode razorpay response: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("%w: response missing order id", ErrGatewayUnavailable)
	}

	return &GatewayOrder{
		OrderID:     result.ID,
		AmountMinor: result.Amount,
		Currency:    result.Currency,
		Receipt:     result.Receipt,
	}, nil
}
