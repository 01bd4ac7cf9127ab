package model

// EventKind is the closed set of webhook event types this service reacts
// to. Anything the gateway may add later parses as EventUnknown and is
// acknowledged without processing.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventPaymentCaptured
	EventPaymentFailed
	EventOrderPaid
)

func ParseEventKind(event string) EventKind {
	switch event {
	case "payment.captured":
		return EventPaymentCaptured
	case "payment.failed":
		return EventPaymentFailed
	case "order.paid":
		return EventOrderPaid
	default:
		return EventUnknown
	}
}

func (k EventKind) String() string {
	switch k {
	case EventPaymentCaptured:
		return "payment.captured"
	case EventPaymentFailed:
		return "payment.failed"
	case EventOrderPaid:
		return "order.paid"
	default:
		return "unknown"
	}
}

type PaymentEntity struct {
	ID        string `json:"id"` // razorpay payment id
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"` // paise
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
}

type OrderEntity struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
}

type WebhookPayload struct {
	Payment struct {
		Entity PaymentEntity `json:"entity"`
	} `json:"payment"`
	Order struct {
		Entity OrderEntity `json:"entity"`
	} `json:"order"`
}

type WebhookEvent struct {
	Event     string         `json:"event"`
	AccountID string         `json:"account_id"`
	CreatedAt int64          `json:"created_at"`
	Payload   WebhookPayload `json:"payload"`
}

func (e *WebhookEvent) Kind() EventKind {
	return ParseEventKind(e.Event)
}
