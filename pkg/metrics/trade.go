package metrics

import "github.com/prometheus/client_golang/prometheus"

var OrdersSubmittedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_orders_submitted_total",
		Help: "orders accepted by the exchange",
	}, []string{"symbol", "side", "order_type"})

var OrderSubmitErrorsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_order_submit_errors_total",
		Help: "failed order submission attempts, each one retried until the deadline",
	}, []string{"symbol", "order_type"})

var FlattenOrdersMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_flatten_orders_total",
		Help: "reduce-only market orders issued to flatten a position",
	}, []string{"symbol", "reason"})

var LadderFillsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_ladder_fills_total",
		Help: "take-profit rungs observed as filled",
	}, []string{"symbol", "rung"})

var StopRatchetsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_stop_ratchets_total",
		Help: "stop-loss moves after a take-profit fill",
	}, []string{"symbol"})

var TradesMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ladderbot_trades_total",
		Help: "executed trades by outcome",
	}, []string{"symbol", "strategy", "outcome"})

var TradeProfitMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ladderbot_trade_profit",
		Help: "balance change of the last concluded trade",
	}, []string{"symbol"})

func init() {
	prometheus.MustRegister(
		OrdersSubmittedMetrics,
		OrderSubmitErrorsMetrics,
		FlattenOrdersMetrics,
		LadderFillsMetrics,
		StopRatchetsMetrics,
		TradesMetrics,
		TradeProfitMetrics,
	)
}
