package handler

import (
	"errors"
	"io"
	"net/http"

	"caelis-storefront/internal/dto"
	"caelis-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService service.OrderService
	production   bool
	logger       *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, production bool, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		production:   production,
		logger:       logger,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid request body"})
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, dto.OrderResponse{Success: true, Order: order})
}

func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid request body"})
	}

	if err := h.orderService.VerifyPayment(ctx, &req); err != nil {
		return h.writeError(c, err, "Failed to verify payment")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Payment verified successfully"})
}

// Webhook reads the body before anything can parse it: the signature is
// computed over the exact byte stream.
func (h *OrderHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
	}
	sig := c.Request().Header.Get("X-Razorpay-Signature")

	err = h.orderService.HandleWebhook(ctx, body, sig)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, service.ErrInvalidSignature):
		h.logger.Warn("webhook rejected, invalid signature")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid signature"})
	case errors.Is(err, service.ErrConfiguration):
		h.logger.Error("webhook secret not configured")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Webhook secret not configured"})
	default:
		h.logger.Error("webhook processing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Webhook processing failed"})
	}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetOrder(ctx, c.Param("orderId"))
	if err != nil {
		return h.writeError(c, err, "Failed to fetch order")
	}

	return c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Order: order})
}

func (h *OrderHandler) writeError(c echo.Context, err error, genericMsg string) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: ve.Message})
	case errors.Is(err, service.ErrInvalidSignature):
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid payment signature"})
	case errors.Is(err, service.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, dto.MessageResponse{Success: false, Message: "Order not found"})
	}

	h.logger.Error(genericMsg, zap.Error(err))
	msg := genericMsg
	if !h.production {
		// production mode hides internal detail from callers
		msg = genericMsg + ": " + err.Error()
	}
	return c.JSON(http.StatusInternalServerError, dto.MessageResponse{Success: false, Message: msg})
}
