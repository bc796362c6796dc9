package pattern

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/types"
)

// MeasurePullback finds the first valid Fibonacci retracement following an
// impulse (§4.2). It is non-greedy: the shortest accepted length wins. A
// window that breaks past the impulse's opposite extremum terminates the
// search immediately (invalidation); a window that satisfies the depth
// range but fails the slowdown test is skipped, not invalidated, so
// longer lengths are still tried.
func MeasurePullback(bars []types.Bar, impulse types.Impulse, cfg config.PullbackDetection) (types.Pullback, bool) {
	startIdx := impulse.EndIdx + 1
	if startIdx >= len(bars) {
		return types.Pullback{}, false
	}

	var impulseBodySum float64
	impulseLen := impulse.EndIdx - impulse.StartIdx + 1
	for k := impulse.StartIdx; k <= impulse.EndIdx; k++ {
		impulseBodySum += absf(bars[k].Close - bars[k].Open)
	}
	impulseAvgBody := impulseBodySum / float64(impulseLen)

	for length := 1; length <= cfg.MaxDurationCandles; length++ {
		endIdx := startIdx + length - 1
		if endIdx >= len(bars) {
			break
		}

		winHigh, winLow := windowExtrema(bars, startIdx, endIdx)

		if impulse.Direction == types.Bullish {
			if winLow < impulse.ExtremumLow {
				return types.Pullback{}, false // invalidated, terminal
			}
			depth := (impulse.ExtremumHigh - winLow) / impulse.Range
			if depth < cfg.FibRange.Min || depth > cfg.FibRange.Max {
				continue
			}
			if cfg.RequireSlowdown {
				pbAvgBody := windowBodySum(bars, startIdx, endIdx) / float64(length)
				if pbAvgBody >= impulseAvgBody {
					continue
				}
			}
			return types.Pullback{
				Impulse:  impulse,
				StartIdx: startIdx,
				EndIdx:   endIdx,
				Depth:    depth,
				Low:      winLow,
				High:     winHigh,
			}, true
		}

		// Bearish.
		if winHigh > impulse.ExtremumHigh {
			return types.Pullback{}, false
		}
		depth := (winHigh - impulse.ExtremumLow) / impulse.Range
		if depth < cfg.FibRange.Min || depth > cfg.FibRange.Max {
			continue
		}
		if cfg.RequireSlowdown {
			pbAvgBody := windowBodySum(bars, startIdx, endIdx) / float64(length)
			if pbAvgBody >= impulseAvgBody {
				continue
			}
		}
		return types.Pullback{
			Impulse:  impulse,
			StartIdx: startIdx,
			EndIdx:   endIdx,
			Depth:    depth,
			Low:      winLow,
			High:     winHigh,
		}, true
	}
	return types.Pullback{}, false
}
