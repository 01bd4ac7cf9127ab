package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// SupportedCurrencies is the closed set the gateway account accepts.
var SupportedCurrencies = []string{"INR", "USD", "EUR", "GBP"}

func ValidCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

type Order struct {
	OrderID   string          `gorm:"primaryKey;size:64;not null" json:"orderId"` // razorpay order id
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`        // major units (rupees, not paise)
	Currency  string          `gorm:"size:8;not null" json:"currency"`
	Status    string          `gorm:"size:16;index;not null" json:"status"` // created, paid, failed
	PaymentID string          `gorm:"size:64" json:"paymentId,omitempty"`
	Receipt   string          `gorm:"size:40" json:"receipt,omitempty"`

	CustomerEmail string `gorm:"size:254;not null" json:"customerEmail"`
	CustomerName  string `gorm:"size:200;not null" json:"customerName"`

	ShippingStreet  string `gorm:"size:200" json:"shippingStreet,omitempty"`
	ShippingCity    string `gorm:"size:100" json:"shippingCity,omitempty"`
	ShippingState   string `gorm:"size:100" json:"shippingState,omitempty"`
	ShippingZipCode string `gorm:"size:20" json:"shippingZipCode,omitempty"`
	ShippingCountry string `gorm:"size:100" json:"shippingCountry,omitempty"`

	Products []OrderProduct `gorm:"foreignKey:OrderID;references:OrderID" json:"products"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Terminal reports whether the order reached a final state.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusFailed
}

type OrderProduct struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// FK → order.order_id
	OrderID   string          `gorm:"size:64;index;not null" json:"-"`
	ProductID string          `gorm:"size:64;not null" json:"productId"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"-"`
}

type Subscription struct {
	Email     string    `gorm:"primaryKey;size:254;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
