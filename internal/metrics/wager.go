// Package metrics exposes Prometheus instruments for the wager engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wager_bets_total",
			Help: "Bet placement attempts by result",
		},
		[]string{"result"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wager_bet_duration_ms",
			Help:    "Bet placement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"result"},
	)

	settlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wager_settlements_total",
			Help: "Match settlement attempts by result",
		},
		[]string{"result"},
	)

	settlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wager_settlement_duration_ms",
			Help:    "Match settlement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"result"},
	)

	betsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wager_bets_resolved_total",
			Help: "Bets flipped out of PENDING by settlement",
		},
	)
)

// RecordBet records one placement attempt. result is "success" or the
// rejection kind.
func RecordBet(result string, started time.Time) {
	betsTotal.WithLabelValues(result).Inc()
	betDuration.WithLabelValues(result).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordSettlement records one settlement attempt and, on success, the
// number of bets it resolved.
func RecordSettlement(result string, resolved int, started time.Time) {
	settlementsTotal.WithLabelValues(result).Inc()
	settlementDuration.WithLabelValues(result).Observe(float64(time.Since(started).Milliseconds()))

	if resolved > 0 {
		betsResolved.Add(float64(resolved))
	}
}
