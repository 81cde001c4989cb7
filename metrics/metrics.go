package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PromotionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinema_promotions_applied_total",
		Help: "Promotions applied to confirmed bookings, by scope.",
	}, []string{"scope"})

	PointsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinema_loyalty_points_total",
		Help: "Loyalty points moved by the ledger, by direction and reason.",
	}, []string{"direction", "reason"})

	RankUpgrades = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinema_rank_upgrades_total",
		Help: "Rank changes detected while adding points.",
	})

	InvoiceTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinema_invoice_transitions_total",
		Help: "Invoice status transitions.",
	}, []string{"status"})
)
