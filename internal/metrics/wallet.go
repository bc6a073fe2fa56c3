// Package metrics exposes wallet and market counters for Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WalletOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matka_wallet_operations_total",
		Help: "wallet operations by kind and outcome",
	}, []string{"operation", "outcome"})

	WalletAmount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matka_wallet_amount_total",
		Help: "money moved through the wallet in minor units",
	}, []string{"operation"})

	WalletBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "matka_wallet_balance",
		Help: "last observed wallet balance in minor units",
	})

	BetsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matka_bets_total",
		Help: "bets by type and outcome",
	}, []string{"bet_type", "outcome"})

	MarketsByStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matka_markets",
		Help: "games per market status at the last board evaluation",
	}, []string{"status"})
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(WalletOperations, WalletAmount, WalletBalance, BetsPlaced, MarketsByStatus)
	})
}

// Outcome labels
const (
	OutcomeOk       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
