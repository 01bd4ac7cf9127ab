package dto

import (
	"caelis-storefront/internal/model"

	"github.com/shopspring/decimal"
)

type CustomerData struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type ProductItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"min=1"`
}

type CreateOrderRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Receipt      string          `json:"receipt"`
	CustomerData CustomerData    `json:"customerData"`
	Products     []ProductItem   `json:"products" validate:"min=1,dive"`
}

// Field names fixed by the gateway's browser checkout callback.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
