package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gokey",
			Name:      "auth_failures_total",
			Help:      "Rejected bearer tokens by reason",
		},
		[]string{"reason"},
	)
	sessionOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gokey",
			Name:      "sessions_total",
			Help:      "Session operations by outcome",
		},
		[]string{"op", "result"},
	)
)
