package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"

	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/infrastructure/metrics"
	"github.com/vladima-ai/payment-service/internal/robokassa"
)

// Auxiliary parameter names echoed back by the gateway on every callback.
// They tie a callback to internal buyer/chat/order identity.
const (
	ShpUserID     = "Shp_user_id"
	ShpChatID     = "Shp_chat_id"
	ShpProduct    = "Shp_product"
	ShpOrderToken = "Shp_order_token"
)

// orderTokenLength gives 132 bits of entropy over the nanoid alphabet.
const orderTokenLength = 22

type PaymentUsecase struct {
	OrderRepo domain.OrderRepository
	Notifier  domain.PaymentNotifier
	Publisher domain.PaymentEventPublisher
	Metrics   *metrics.PaymentMetrics
	Gateway   robokassa.Gateway

	newToken func() string
}

func NewPaymentUsecase(
	orderRepo domain.OrderRepository,
	notifier domain.PaymentNotifier,
	pub domain.PaymentEventPublisher,
	m *metrics.PaymentMetrics,
	gateway robokassa.Gateway,
) (*PaymentUsecase, error) {
	newToken, err := nanoid.Standard(orderTokenLength)
	if err != nil {
		return nil, fmt.Errorf("init token generator: %w", err)
	}
	return &PaymentUsecase{
		OrderRepo: orderRepo,
		Notifier:  notifier,
		Publisher: pub,
		Metrics:   m,
		Gateway:   gateway,
		newToken:  newToken,
	}, nil
}

type CreateOrderInput struct {
	UserID      int64
	ChatID      int64
	ProductCode string
	Amount      string
	Description string
}

// CreateOrder inserts a pending order with a canonical amount and a fresh
// unpredictable order token.
func (uc *PaymentUsecase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	amount, err := robokassa.NormalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderToken:  uc.newToken(),
		UserID:      input.UserID,
		ChatID:      input.ChatID,
		ProductCode: input.ProductCode,
		Amount:      amount,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	uc.Metrics.OrdersCreatedTotal.WithLabelValues(order.ProductCode).Inc()
	slog.Info("order created",
		"inv_id", order.InvID,
		"product", order.ProductCode,
		"amount", order.Amount,
	)
	return order, nil
}

// PaymentURL builds the signed redirect URL for an existing order. The
// auxiliary params carry the identities the ResultURL pipeline needs back.
func (uc *PaymentUsecase) PaymentURL(order *domain.Order, email string) (string, error) {
	shp := map[string]string{
		ShpUserID:     fmt.Sprintf("%d", order.UserID),
		ShpChatID:     fmt.Sprintf("%d", order.ChatID),
		ShpProduct:    order.ProductCode,
		ShpOrderToken: order.OrderToken,
	}
	return robokassa.BuildPaymentURL(uc.Gateway, robokassa.PaymentURLInput{
		InvID:       order.InvID,
		OutSum:      order.Amount,
		Description: order.Description,
		Shp:         shp,
		Email:       email,
	})
}

type ConfirmResult struct {
	InvID     int64
	NewlyPaid bool
}

// ConfirmPayment processes a ResultURL delivery: signature, order lookup,
// amount and token comparison, then the idempotent transition. The one-time
// side effects (access message, paid event) fire only for the call that
// performed the transition. All verification failures return a domain error
// the handler collapses to the gateway's sentinel; storage failures propagate.
func (uc *PaymentUsecase) ConfirmPayment(ctx context.Context, params map[string]string) (ConfirmResult, error) {
	start := time.Now()
	defer func() {
		uc.Metrics.CallbackDuration.Observe(time.Since(start).Seconds())
	}()

	cb, err := robokassa.VerifyResultURL(params, uc.Gateway.Creds)
	if err != nil {
		uc.rejected(rejectReason(err), err)
		return ConfirmResult{}, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, cb.InvID)
	if errors.Is(err, domain.ErrUnknownOrder) {
		uc.rejected("unknown_order", err)
		return ConfirmResult{}, err
	}
	if err != nil {
		return ConfirmResult{}, err
	}

	// The stored canonical amount is the source of truth. A valid signature
	// replayed from a different, cheaper order still fails here.
	if order.Amount != cb.OutSum {
		err := fmt.Errorf("%w: InvId=%d", domain.ErrAmountMismatch, cb.InvID)
		uc.rejected("amount_mismatch", err)
		return ConfirmResult{}, err
	}

	// Secondary anti-forgery check, always behind the signature check.
	if token := cb.Shp[ShpOrderToken]; order.OrderToken != "" && token != "" && token != order.OrderToken {
		err := fmt.Errorf("%w: InvId=%d", domain.ErrTokenMismatch, cb.InvID)
		uc.rejected("token_mismatch", err)
		return ConfirmResult{}, err
	}

	raw, err := json.Marshal(cb.Raw)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("marshal raw params: %w", err)
	}

	newlyPaid, err := uc.OrderRepo.MarkPaidIfPending(ctx, cb.InvID, string(raw))
	if err != nil {
		return ConfirmResult{}, err
	}

	if newlyPaid {
		uc.Metrics.PaymentsConfirmedTotal.WithLabelValues(order.ProductCode).Inc()
		slog.Info("payment confirmed", "inv_id", cb.InvID, "product", order.ProductCode, "amount", order.Amount)
		uc.dispatchPaid(order)
	} else {
		slog.Info("payment already confirmed, acknowledging retry", "inv_id", cb.InvID)
	}

	return ConfirmResult{InvID: cb.InvID, NewlyPaid: newlyPaid}, nil
}

// dispatchPaid runs the one-time side effects fire-and-forget: a failure to
// notify or publish must never fail the webhook acknowledgment, or the
// gateway retries a payment it already delivered correctly.
func (uc *PaymentUsecase) dispatchPaid(order *domain.Order) {
	go func(order domain.Order) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.Notifier.NotifyPaid(ctx, &order); err != nil {
			slog.Error("access notification failed", "inv_id", order.InvID, "error", err.Error())
		}
	}(*order)

	go func(event domain.PaidEvent) {
		if err := uc.Publisher.PublishPaid(event); err != nil {
			slog.Error("failed to publish PaidEvent", "inv_id", event.InvID, "error", err.Error())
		}
	}(domain.PaidEvent{
		EventID:     uuid.NewString(),
		InvID:       order.InvID,
		UserID:      order.UserID,
		ChatID:      order.ChatID,
		ProductCode: order.ProductCode,
		Amount:      order.Amount,
		PaidAt:      time.Now(),
	})
}

// VerifySuccessRedirect checks the user-facing SuccessURL redirect. It is
// informational only; payment state comes from the ResultURL path.
func (uc *PaymentUsecase) VerifySuccessRedirect(params map[string]string) (*robokassa.Callback, error) {
	cb, err := robokassa.VerifySuccessURL(params, uc.Gateway.Creds)
	if err != nil {
		slog.Warn("success redirect rejected", "error", err.Error())
		return nil, err
	}
	return cb, nil
}

// PaidOrdersSince is the reporting seam consumed by the digest tooling.
func (uc *PaymentUsecase) PaidOrdersSince(ctx context.Context, productCodes []string, since time.Time) ([]*domain.Order, error) {
	return uc.OrderRepo.GetPaidOrdersSince(ctx, productCodes, since)
}

func (uc *PaymentUsecase) rejected(reason string, err error) {
	// Reason tags only: expected/received digests never reach logs.
	uc.Metrics.CallbacksRejectedTotal.WithLabelValues(reason).Inc()
	slog.Warn("result callback rejected", "reason", reason, "error", err.Error())
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingParameters):
		return "missing_parameters"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "bad_signature"
	}
}
