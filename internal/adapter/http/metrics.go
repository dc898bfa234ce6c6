package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_inquiries_total",
			Help: "Inquiry outcomes (quoted or rejected)",
		},
		[]string{"outcome"},
	)

	commitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_commits_total",
			Help: "Commit outcomes (committed or failed)",
		},
		[]string{"outcome"},
	)

	promoRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_promo_rejections_total",
			Help: "Promo ineligibility by reason code",
		},
		[]string{"reason"},
	)
)
