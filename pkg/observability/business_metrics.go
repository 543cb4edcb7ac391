package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the business metrics
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected" // precondition not met, nothing changed
	OutcomeFailed   = "failed"
)

var (
	// Subscription lifecycle metrics
	subscriptionOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_subscription_operations_total",
		Help: "Subscription lifecycle operations by outcome",
	}, []string{
		"operation", // create, pause, resume, cancel, swap, sync_trial, end_trial
		"outcome",   // success, rejected, failed
	})

	subscriptionsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_subscriptions_created_total",
		Help: "Subscriptions created, by plan and whether a trial was granted",
	}, []string{
		"plan_id",
		"trial",
	})

	// Invoice metrics
	invoiceOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_invoice_operations_total",
		Help: "Invoice operations by outcome",
	}, []string{
		"operation", // create, fetch, issue, cancel
		"outcome",
	})

	invoiceAmountMinor = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_invoice_amount_minor_total",
		Help: "Total invoiced amount in minor currency units",
	}, []string{
		"currency",
	})

	// Order metrics
	ordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_orders_total",
		Help: "Orders created by kind and outcome",
	}, []string{
		"kind", // order, charge
		"outcome",
	})

	orderAmountMinor = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cashier_order_amount_minor_total",
		Help: "Total ordered amount in minor currency units",
	}, []string{
		"currency",
	})
)

// RecordSubscriptionOperation records a lifecycle operation outcome
func RecordSubscriptionOperation(operation, outcome string) {
	subscriptionOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordSubscriptionCreated records a new subscription
func RecordSubscriptionCreated(planID string, trial bool) {
	label := "false"
	if trial {
		label = "true"
	}
	subscriptionsCreatedTotal.WithLabelValues(planID, label).Inc()
}

// RecordInvoiceOperation records an invoice operation outcome
func RecordInvoiceOperation(operation, outcome string) {
	invoiceOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordInvoiceAmount adds a created invoice's amount to the running total
func RecordInvoiceAmount(currency string, amountMinor int64) {
	invoiceAmountMinor.WithLabelValues(currency).Add(float64(amountMinor))
}

// RecordOrder records an order or charge; the amount only counts on success
func RecordOrder(kind, outcome, currency string, amountMinor int64) {
	ordersTotal.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeSuccess {
		orderAmountMinor.WithLabelValues(currency).Add(float64(amountMinor))
	}
}
