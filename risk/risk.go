// Package risk holds the SL/TP/R-multiple arithmetic shared by the
// labeler (§4.6), the trade simulator (§4.7), and the live-scan SL
// convention (§6, §9 note 3).
package risk

import (
	"math"

	"github.com/evdnx/impulsefib/types"
)

// LabelTargets computes the SL/TP pair the labeler simulates against: an
// ATR-buffer stop and a fixed-RR target (§4.6).
func LabelTargets(direction types.Direction, entryPrice, pullbackLow, pullbackHigh, atrAtPullbackEnd, bufferATR, targetRR float64) (sl, tp float64) {
	if direction == types.Bullish {
		sl = pullbackLow - bufferATR*atrAtPullbackEnd
		tp = entryPrice + targetRR*(entryPrice-sl)
		return sl, tp
	}
	sl = pullbackHigh + bufferATR*atrAtPullbackEnd
	tp = entryPrice - targetRR*(sl-entryPrice)
	return sl, tp
}

// SimTargets computes the two-target TP the trade simulator uses: the
// closer of a Fibonacci 1.272 extension beyond the impulse extremum and a
// fixed-RR target (§4.7). The SL is identical to LabelTargets.
func SimTargets(direction types.Direction, entryPrice, pullbackLow, pullbackHigh, atrAtPullbackEnd, bufferATR, simRR, fibExtension, impulseExtremumHigh, impulseExtremumLow, impulseRange float64) (sl, tp float64) {
	if direction == types.Bullish {
		sl = pullbackLow - bufferATR*atrAtPullbackEnd
		tpExt := impulseExtremumHigh + fibExtension*impulseRange
		tpRR := entryPrice + simRR*(entryPrice-sl)
		tp = math.Min(tpExt, tpRR)
		return sl, tp
	}
	sl = pullbackHigh + bufferATR*atrAtPullbackEnd
	tpExt := impulseExtremumLow - fibExtension*impulseRange
	tpRR := entryPrice - simRR*(sl-entryPrice)
	tp = math.Max(tpExt, tpRR)
	return sl, tp
}

// ScannerStopLoss is the live-scan SL convention (§6, §9 note 3): a fixed
// 0.3% buffer off the pullback extremum, distinct from the ATR-buffer SL
// used by the labeler and simulator. It surfaces the live-vs-backtest
// divergence the spec flags as worth calling out rather than leaving it
// only in prose.
func ScannerStopLoss(direction types.Direction, pullbackExtremum float64) float64 {
	const scannerBuffer = 0.003
	if direction == types.Bullish {
		return pullbackExtremum * (1 - scannerBuffer)
	}
	return pullbackExtremum * (1 + scannerBuffer)
}

// ScannerTakeProfit mirrors ScannerStopLoss for the live-scan TP
// convention: entry ± 2.0 * risk, where risk = |entry - SL|.
func ScannerTakeProfit(direction types.Direction, entryPrice, scannerSL float64) float64 {
	risk := math.Abs(entryPrice - scannerSL)
	if direction == types.Bullish {
		return entryPrice + 2.0*risk
	}
	return entryPrice - 2.0*risk
}

// RiskReward computes the risk, reward, and ratio for an entry/SL/TP
// triple. Ratio is 0 when risk is 0 (denominator-zero fallback).
func RiskReward(entryPrice, sl, tp float64) (risk, reward, ratio float64) {
	risk = math.Abs(entryPrice - sl)
	reward = math.Abs(tp - entryPrice)
	if risk == 0 {
		return risk, reward, 0
	}
	return risk, reward, reward / risk
}
