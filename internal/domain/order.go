package domain

import "time"

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
)

// Product codes sold through the bot.
const (
	ProductWebinar       = "webinar"
	ProductGroupStandard = "group_standard"
	ProductGroupVIP      = "group_vip"
	ProductPro           = "pro"
)

// Order is one purchase attempt. Rows are never deleted: a paid order is the
// permanent audit record of the payment.
type Order struct {
	InvID       int64
	OrderToken  string
	UserID      int64
	ChatID      int64
	ProductCode string
	// Amount is the canonical two-decimal string ("2990.00"). It is the source
	// of truth: a callback reporting a different amount is rejected.
	Amount      string
	Description string
	Status      OrderStatus
	CreatedAt   time.Time
	PaidAt      *time.Time
	// RawResultParams holds the verified ResultURL payload, written exactly
	// once at the pending -> paid transition.
	RawResultParams string
}

func GroupProductCodes() []string {
	return []string{ProductGroupStandard, ProductGroupVIP}
}
