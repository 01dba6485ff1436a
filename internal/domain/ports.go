package domain

import (
	"context"
	"time"
)

// PaymentNotifier delivers the access message to the buyer's chat after a
// confirmed payment. Implementations are called only on the first transition;
// failures are logged by the caller and never affect the webhook response.
type PaymentNotifier interface {
	NotifyPaid(ctx context.Context, order *Order) error
}

// PaidEvent is published once per confirmed payment for downstream consumers
// (digest/reporting tooling).
type PaidEvent struct {
	EventID     string    `json:"event_id"`
	InvID       int64     `json:"inv_id"`
	UserID      int64     `json:"user_id"`
	ChatID      int64     `json:"chat_id"`
	ProductCode string    `json:"product_code"`
	Amount      string    `json:"amount"`
	PaidAt      time.Time `json:"paid_at"`
}

type PaymentEventPublisher interface {
	PublishPaid(event PaidEvent) error
}
