package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tourney_webhook_events_total", Help: "Webhook deliveries by reconciliation outcome"},
		[]string{"outcome"},
	)
	CheckoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tourney_checkout_sessions_total", Help: "Checkout session requests by result"},
		[]string{"result"},
	)
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tourney_registrations_total", Help: "Committed registrations by source"},
		[]string{"source"},
	)
	PrunedDeliveries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tourney_webhook_deliveries_pruned_total", Help: "Webhook delivery records removed by retention"},
	)
)

func Register() {
	prometheus.MustRegister(WebhookEvents, CheckoutSessions, Registrations, PrunedDeliveries)
}
