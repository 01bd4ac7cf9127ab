package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"caelis-storefront/internal/client"
	"caelis-storefront/internal/dto"
	"caelis-storefront/internal/model"
	"caelis-storefront/internal/repository"
	"caelis-storefront/internal/signature"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) error
	HandleWebhook(ctx context.Context, body []byte, sig string) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	Subscribe(ctx context.Context, email string) error
}

type orderServiceImpl struct {
	gateway          client.RazorpayClient
	verifier         *signature.Verifier
	orderRepo        repository.OrderRepository
	subscriptionRepo repository.SubscriptionRepository
	notifier         NotificationDispatcher
	validate         *validator.Validate
	logger           *zap.Logger
}

func NewOrderService(
	gateway client.RazorpayClient,
	verifier *signature.Verifier,
	orderRepo repository.OrderRepository,
	subscriptionRepo repository.SubscriptionRepository,
	notifier NotificationDispatcher,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		gateway:          gateway,
		verifier:         verifier,
		orderRepo:        orderRepo,
		subscriptionRepo: subscriptionRepo,
		notifier:         notifier,
		validate:         validator.New(),
		logger:           logger,
	}
}

const defaultCurrency = "INR"

var oneHundred = decimal.NewFromInt(100)

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	if err := s.validateCreate(req, currency); err != nil {
		return nil, err
	}

	receipt := sanitizeText(req.Receipt, 40)
	if receipt == "" {
		receipt = uuid.NewString()
	}

	// gateway order first, persistence second: a timed-out gateway call
	// must never leave a local order with no gateway counterpart
	gatewayOrder, err := s.gateway.CreateOrder(ctx, client.CreateOrderParams{
		Amount:   req.Amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	products := make([]model.OrderProduct, len(req.Products))
	for i, p := range req.Products {
		products[i] = model.OrderProduct{
			OrderID:   gatewayOrder.OrderID,
			ProductID: sanitizeText(p.ProductID, 64),
			Name:      sanitizeText(p.Name, 200),
			Price:     p.Price,
			Quantity:  p.Quantity,
		}
	}

	order := &model.Order{
		OrderID: gatewayOrder.OrderID,
		// the gateway confirms amounts in paise; convert back at this
		// one boundary so the stored amount is gateway-canonical
		Amount:          decimal.NewFromInt(gatewayOrder.AmountMinor).Div(oneHundred),
		Currency:        gatewayOrder.Currency,
		Status:          model.OrderStatusCreated,
		Receipt:         gatewayOrder.Receipt,
		CustomerEmail:   sanitizeText(req.CustomerData.Email, 254),
		CustomerName:    sanitizeText(req.CustomerData.Name, 200),
		ShippingStreet:  sanitizeText(req.CustomerData.Address, 200),
		ShippingCity:    sanitizeText(req.CustomerData.City, 100),
		ShippingState:   sanitizeText(req.CustomerData.State, 100),
		ShippingZipCode: sanitizeText(req.CustomerData.ZipCode, 20),
		ShippingCountry: sanitizeText(req.CustomerData.Country, 100),
		Products:        products,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// the gateway-side order exists but we could not record it; keep
		// its id in the log for manual reconciliation
		s.logger.Error("store order after gateway create",
			zap.String("gateway_order_id", gatewayOrder.OrderID),
			zap.Error(err))
		return nil, fmt.Errorf("store order %s: %w", gatewayOrder.OrderID, err)
	}

	s.notifier.OrderConfirmation(order)

	s.logger.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("amount", order.Amount.String()),
		zap.String("currency", order.Currency))

	return order, nil
}

func (s *orderServiceImpl) validateCreate(req *dto.CreateOrderRequest, currency string) error {
	if req.Amount.Sign() <= 0 {
		return NewValidationError("Invalid amount")
	}
	if !model.ValidCurrency(currency) {
		return NewValidationError("Invalid currency")
	}
	if req.CustomerData.Email == "" || req.CustomerData.Name == "" {
		return NewValidationError("Customer data is required")
	}
	if len(req.Products) == 0 {
		return NewValidationError("Products data is required")
	}
	for _, p := range req.Products {
		if p.ProductID == "" || p.Name == "" || p.Price.Sign() <= 0 || p.Quantity < 1 {
			return NewValidationError("Invalid product data")
		}
	}
	if err := s.validate.Struct(req); err != nil {
		return NewValidationError("Invalid request data")
	}
	return nil
}

func (s *orderServiceImpl) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) error {
	orderID := sanitizeText(req.OrderID, 64)
	paymentID := sanitizeText(req.PaymentID, 64)
	sig := sanitizeText(req.Signature, 128)

	if orderID == "" || paymentID == "" || sig == "" {
		return NewValidationError("Missing required payment verification fields")
	}

	ok, err := s.verifier.Payment(orderID, paymentID, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if !ok {
		// mark the order failed; a terminal order is left untouched by
		// the status guard, and an unknown order is simply skipped
		applied, err := s.orderRepo.MarkFailed(ctx, orderID)
		if err != nil {
			return fmt.Errorf("mark order failed: %w", err)
		}
		if applied {
			s.logger.Warn("order marked failed on signature mismatch",
				zap.String("order_id", orderID))
		}
		return ErrInvalidSignature
	}

	applied, err := s.orderRepo.MarkPaid(ctx, orderID, paymentID)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if applied {
		s.logger.Info("payment verified, order marked paid",
			zap.String("order_id", orderID),
			zap.String("payment_id", paymentID))
	} else {
		s.logger.Info("payment verified, no state change",
			zap.String("order_id", orderID))
	}
	return nil
}

func (s *orderServiceImpl) HandleWebhook(ctx context.Context, body []byte, sig string) error {
	ok, err := s.verifier.Webhook(body, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if !ok {
		return ErrInvalidSignature
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	s.logger.Info("webhook received", zap.String("event", event.Event))

	switch event.Kind() {
	case model.EventPaymentCaptured:
		return s.applyCaptured(ctx, &event)
	case model.EventPaymentFailed:
		return s.applyFailed(ctx, &event)
	case model.EventOrderPaid:
		// capture events already drive the paid transition
		return nil
	case model.EventUnknown:
		s.logger.Info("unhandled webhook event", zap.String("event", event.Event))
		return nil
	}
	return nil
}

func (s *orderServiceImpl) applyCaptured(ctx context.Context, event *model.WebhookEvent) error {
	payment := event.Payload.Payment.Entity
	if payment.OrderID == "" {
		s.logger.Warn("captured event without order id")
		return nil
	}

	applied, err := s.orderRepo.MarkPaid(ctx, payment.OrderID, payment.ID)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if applied {
		s.logger.Info("order marked paid via webhook",
			zap.String("order_id", payment.OrderID),
			zap.String("payment_id", payment.ID))
	} else {
		// unknown or already terminal; acknowledge either way so the
		// gateway stops retrying
		s.logger.Info("captured event skipped",
			zap.String("order_id", payment.OrderID))
	}
	return nil
}

func (s *orderServiceImpl) applyFailed(ctx context.Context, event *model.WebhookEvent) error {
	payment := event.Payload.Payment.Entity
	if payment.OrderID == "" {
		s.logger.Warn("failed event without order id")
		return nil
	}

	applied, err := s.orderRepo.MarkFailed(ctx, payment.OrderID)
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	if applied {
		s.logger.Info("order marked failed via webhook",
			zap.String("order_id", payment.OrderID),
			zap.String("error_code", payment.ErrorCode))
	}
	return nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	orderID = sanitizeText(orderID, 64)

	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) Subscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return NewValidationError("Valid email is required")
	}

	err := s.subscriptionRepo.Create(ctx, email)
	if errors.Is(err, repository.ErrDuplicate) {
		return NewValidationError("Email already subscribed")
	}
	if err != nil {
		return fmt.Errorf("store subscription: %w", err)
	}

	s.notifier.SubscriptionNotification(email)

	s.logger.Info("new subscription", zap.String("email", email))
	return nil
}
