package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"caelis-storefront/internal/config"
	"caelis-storefront/internal/dto"
	"caelis-storefront/internal/model"
	"caelis-storefront/internal/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubService struct{}

func (stubService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	return &model.Order{OrderID: "order_abc", Status: model.OrderStatusCreated}, nil
}
func (stubService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) error { return nil }
func (stubService) HandleWebhook(ctx context.Context, body []byte, sig string) error       { return nil }
func (stubService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return nil, service.ErrOrderNotFound
}
func (stubService) Subscribe(ctx context.Context, email string) error { return nil }

func newTestServer() *Server {
	cfg := &config.Config{FrontendURL: "http://localhost:8000"}
	return NewServer(stubService{}, cfg, zap.NewNop())
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
	assert.Contains(t, rec.Body.String(), `"uptime"`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestOrderRouteWired(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/order/order_missing", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}
