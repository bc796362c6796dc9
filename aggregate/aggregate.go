// Package aggregate rolls a batch of simulated TradeRecords into the
// summary statistics used to judge a configuration (§4.8), and publishes
// them to the process's Prometheus registry.
package aggregate

import (
	"math"

	"github.com/evdnx/impulsefib/metrics"
	"github.com/evdnx/impulsefib/types"
)

// Stats mirrors the reference metrics calculator's output fields.
type Stats struct {
	TotalTrades  int
	WinRate      float64
	Expectancy   float64
	ProfitFactor float64
	MaxDrawdownR float64
	SharpeRatio  float64
	NetProfitR   float64
}

// Calculate computes Stats from a batch of trades. An empty batch returns
// the zero value, matching the reference calculator's empty-frame case.
func Calculate(trades []types.TradeRecord) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	rMultiples := make([]float64, len(trades))
	for i, tr := range trades {
		rMultiples[i] = tr.RMultiple
	}

	wins := 0
	var grossProfit, grossLoss, sum float64
	for _, r := range rMultiples {
		sum += r
		if r > 0 {
			wins++
			grossProfit += r
		} else if r < 0 {
			grossLoss += -r
		}
	}

	winRate := float64(wins) / float64(len(rMultiples))
	expectancy := sum / float64(len(rMultiples))

	profitFactor := math.Inf(1)
	if grossLoss > 0 {
		profitFactor = grossProfit / grossLoss
	}

	maxDrawdown := maxDrawdownR(rMultiples)

	std := stddev(rMultiples, expectancy)
	sharpe := 0.0
	if std > 0 {
		sharpe = expectancy / std
	}

	return Stats{
		TotalTrades:  len(trades),
		WinRate:      winRate,
		Expectancy:   expectancy,
		ProfitFactor: profitFactor,
		MaxDrawdownR: maxDrawdown,
		SharpeRatio:  sharpe,
		NetProfitR:   sum,
	}
}

// CalculateAndPublish computes Stats and pushes them onto the package
// metrics' gauges for the given symbol. Counters (patterns/labels/trades)
// are incremented by the pipeline stages themselves, not here.
func CalculateAndPublish(symbol string, trades []types.TradeRecord) Stats {
	s := Calculate(trades)
	metrics.WinRateGauge.WithLabelValues(symbol).Set(s.WinRate)
	metrics.ExpectancyGauge.WithLabelValues(symbol).Set(s.Expectancy)
	metrics.ProfitFactorGauge.WithLabelValues(symbol).Set(s.ProfitFactor)
	metrics.MaxDrawdownGauge.WithLabelValues(symbol).Set(s.MaxDrawdownR)
	metrics.NetProfitRGauge.WithLabelValues(symbol).Set(s.NetProfitR)
	metrics.SharpeRatioGauge.WithLabelValues(symbol).Set(s.SharpeRatio)
	return s
}

// maxDrawdownR walks the cumulative R-multiple equity curve and returns the
// largest (most negative) drawdown from a running peak.
func maxDrawdownR(rMultiples []float64) float64 {
	var equity, peak, maxDD float64
	first := true
	for _, r := range rMultiples {
		equity += r
		if first || equity > peak {
			peak = equity
			first = false
		}
		dd := equity - peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// stddev is the sample standard deviation (ddof=1), matching pandas'
// default Series.std() used by the reference metrics calculator.
func stddev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
