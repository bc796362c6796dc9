package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PatternsDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "impulsefib_patterns_detected_total",
			Help: "Total number of assembled impulse/pullback/structure patterns, by symbol.",
		},
		[]string{"symbol"},
	)

	LabelsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "impulsefib_labels_emitted_total",
			Help: "Total number of labeler outcomes, by symbol and label value.",
		},
		[]string{"symbol", "label"},
	)

	TradesSimulated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "impulsefib_trades_simulated_total",
			Help: "Total number of trade-simulator replays, by symbol.",
		},
		[]string{"symbol"},
	)

	WinRateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_win_rate",
			Help: "Most recent aggregate win rate, by symbol.",
		},
		[]string{"symbol"},
	)

	ExpectancyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_expectancy_r",
			Help: "Most recent aggregate expectancy in R-multiples, by symbol.",
		},
		[]string{"symbol"},
	)

	ProfitFactorGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_profit_factor",
			Help: "Most recent aggregate profit factor, by symbol.",
		},
		[]string{"symbol"},
	)

	MaxDrawdownGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_max_drawdown_r",
			Help: "Most recent aggregate max drawdown in R-multiples, by symbol.",
		},
		[]string{"symbol"},
	)

	NetProfitRGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_net_profit_r",
			Help: "Most recent aggregate net profit in R-multiples, by symbol.",
		},
		[]string{"symbol"},
	)

	SharpeRatioGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "impulsefib_sharpe_ratio",
			Help: "Most recent aggregate Sharpe ratio over R-multiples, by symbol.",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(
		PatternsDetected,
		LabelsEmitted,
		TradesSimulated,
		WinRateGauge,
		ExpectancyGauge,
		ProfitFactorGauge,
		MaxDrawdownGauge,
		NetProfitRGauge,
		SharpeRatioGauge,
	)
}
