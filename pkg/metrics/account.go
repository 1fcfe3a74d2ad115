package metrics

import "github.com/prometheus/client_golang/prometheus"

var AccountBalanceMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ladderbot_account_balance",
		Help: "futures wallet balance observed before and after each trade",
	}, []string{"asset"})

var PositionAmountMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ladderbot_position_amount",
		Help: "signed position amount observed by the ladder supervisor",
	}, []string{"symbol"})

func init() {
	prometheus.MustRegister(AccountBalanceMetrics, PositionAmountMetrics)
}
