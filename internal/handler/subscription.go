package handler

import (
	"errors"
	"net/http"

	"caelis-storefront/internal/dto"
	"caelis-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

func NewSubscriptionHandler(orderService service.OrderService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid request body"})
	}

	if err := h.orderService.Subscribe(ctx, req.Email); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: ve.Message})
		}
		h.logger.Error("subscribe failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, dto.MessageResponse{Success: false, Message: "Failed to subscribe"})
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Successfully subscribed to newsletter"})
}
