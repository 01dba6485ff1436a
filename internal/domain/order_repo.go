package domain

import (
	"context"
	"time"
)

type OrderRepository interface {
	// CreateOrder inserts the order with status=pending and fills InvID with
	// the freshly assigned identifier.
	CreateOrder(ctx context.Context, order *Order) error

	// GetOrderByID returns ErrUnknownOrder when no row exists.
	GetOrderByID(ctx context.Context, invID int64) (*Order, error)

	// MarkPaidIfPending atomically transitions pending -> paid, recording
	// paid_at and the raw callback payload. Returns true only for the call
	// that performed the transition; every other call for the same order,
	// including concurrent ones, observes false.
	MarkPaidIfPending(ctx context.Context, invID int64, rawParams string) (bool, error)

	// GetPaidOrdersSince lists paid orders for the given product codes with
	// paid_at >= since, ordered by paid_at ascending. Reporting seam for the
	// digest tooling.
	GetPaidOrdersSince(ctx context.Context, productCodes []string, since time.Time) ([]*Order, error)
}
