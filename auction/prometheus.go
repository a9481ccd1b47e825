// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	auctionsStartedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auctions_started_total",
		Help: "Number of auctions opened",
	})
	auctionsEndedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auctions_ended_total",
		Help: "Number of auctions settled",
	})
	bidsAcceptedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_accepted_total",
		Help: "Number of accepted bids",
	})
	bidsRejectedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_rejected_total",
		Help: "Number of rejected bids",
	})
	retainedBalanceGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "retained_balance",
		Help: "Platform fees accrued and not yet claimed",
	})
)

var metricsOnce sync.Once

func registerMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(auctionsStartedCounter)
		prometheus.MustRegister(auctionsEndedCounter)
		prometheus.MustRegister(bidsAcceptedCounter)
		prometheus.MustRegister(bidsRejectedCounter)
		prometheus.MustRegister(retainedBalanceGauge)
	})
}

func setRetainedBalanceGauge(v *big.Int) {
	f, _ := new(big.Float).SetInt(v).Float64()
	retainedBalanceGauge.Set(f)
}
