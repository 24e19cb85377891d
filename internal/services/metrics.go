package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain-level counters complementing the HTTP metrics middleware.
var (
	matchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_matches_created_total",
		Help: "Total number of matches created by the match engine.",
	})

	messagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_messages_posted_total",
		Help: "Total number of chat messages posted.",
	})
)
