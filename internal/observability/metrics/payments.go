package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Total number of settled payments",
		},
		[]string{"method"},
	)

	PaymentFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_failures_total",
			Help: "Total number of rejected payments",
		},
		[]string{"reason"},
	)

	PaymentAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_amount",
			Help:    "Settled payment amounts",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total number of created users",
		},
	)

	FriendshipsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "friendships_total",
			Help: "Total number of recorded friendships",
		},
	)

	FeedStreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_stream_clients",
			Help: "Number of connected live feed subscribers",
		},
	)
)
