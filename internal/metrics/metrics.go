package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_requests_submitted_total",
		Help: "Total number of product requests submitted by farmers.",
	})

	RequestsApprovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_requests_approved_total",
		Help: "Total number of product requests approved.",
	})

	RequestsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_requests_rejected_total",
		Help: "Total number of product requests rejected.",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_created_total",
		Help: "Total number of customer orders successfully created.",
	})

	TransitionsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_transitions_applied_total",
		Help: "Total number of status transitions applied, per entity type.",
	},
		[]string{"entity"},
	)

	InvalidTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_invalid_transitions_total",
		Help: "Total number of rejected status transitions, per entity type.",
	},
		[]string{"entity"},
	)

	AvailabilityCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_availability_cache_items",
		Help: "Current number of entries in the availability cache.",
	})
)
