package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PaymentMetrics struct {
	OrdersCreatedTotal     *prometheus.CounterVec
	PaymentsConfirmedTotal *prometheus.CounterVec
	CallbacksRejectedTotal *prometheus.CounterVec
	CallbackDuration       prometheus.Histogram
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		OrdersCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_orders_created_total",
				Help: "Orders created, by product",
			},
			[]string{"product"},
		),

		PaymentsConfirmedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_confirmed_total",
				Help: "First-time payment confirmations, by product",
			},
			[]string{"product"},
		),

		CallbacksRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_callbacks_rejected_total",
				Help: "ResultURL callbacks rejected, by reason",
			},
			[]string{"reason"},
		),

		CallbackDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payment_callback_duration_seconds",
				Help:    "ResultURL processing duration",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
