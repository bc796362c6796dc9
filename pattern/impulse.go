// Package pattern implements the three sequential recognizers — impulse,
// pullback, structure — as a coupled state machine over bar indices, and
// the assembler that composes their output into Patterns (§4.1-4.4).
package pattern

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/types"
)

// DetectImpulses enumerates candidate directional moves over the bar
// array. A single start index may produce at most two impulses (one
// bullish, one bearish), each independently evaluated and each accepted
// under first-length-wins: the shortest length from min_candles to
// min_candles+length_span-1 that satisfies all acceptance tests stops the
// search for that (start, direction) pair.
func DetectImpulses(bars []types.Bar, cfg config.ImpulseDetection) []types.Impulse {
	var impulses []types.Impulse
	n := len(bars)
	if cfg.MinCandles <= 0 || n < cfg.MinCandles {
		return impulses
	}

	for i := 0; i <= n-cfg.MinCandles; i++ {
		if !bars[i].HasATR || bars[i].ATR == 0 {
			// ATR NaN or degenerate at the impulse start: skip (§4.1, §8).
			continue
		}
		if imp, ok := firstBullishImpulse(bars, i, cfg); ok {
			impulses = append(impulses, imp)
		}
		if imp, ok := firstBearishImpulse(bars, i, cfg); ok {
			impulses = append(impulses, imp)
		}
	}
	return impulses
}

func firstBullishImpulse(bars []types.Bar, i int, cfg config.ImpulseDetection) (types.Impulse, bool) {
	n := len(bars)
	for length := cfg.MinCandles; length < cfg.MinCandles+cfg.LengthSpan; length++ {
		end := i + length - 1
		if end >= n {
			break
		}
		startPrice := bars[i].Open
		endPrice := bars[end].Close
		netMove := endPrice - startPrice
		if netMove <= 0 {
			continue
		}

		hi, lo := windowExtrema(bars, i, end)
		totalRange := hi - lo
		if totalRange <= 0 {
			continue
		}
		if netMove < cfg.MinATRMultiplier*bars[i].ATR {
			continue
		}

		bodySum := windowBodySum(bars, i, end)
		if bodySum/totalRange < cfg.MinBodyRatio {
			continue
		}

		internalRetr := (hi - endPrice) / netMove
		if internalRetr > cfg.MaxInternalRetracement {
			continue
		}

		return types.Impulse{
			Direction:    types.Bullish,
			StartIdx:     i,
			EndIdx:       end,
			StartPrice:   startPrice,
			EndPrice:     endPrice,
			Range:        netMove,
			ExtremumHigh: hi,
			ExtremumLow:  lo,
		}, true
	}
	return types.Impulse{}, false
}

func firstBearishImpulse(bars []types.Bar, i int, cfg config.ImpulseDetection) (types.Impulse, bool) {
	n := len(bars)
	for length := cfg.MinCandles; length < cfg.MinCandles+cfg.LengthSpan; length++ {
		end := i + length - 1
		if end >= n {
			break
		}
		startPrice := bars[i].Open
		endPrice := bars[end].Close
		netMove := startPrice - endPrice
		if netMove <= 0 {
			continue
		}

		hi, lo := windowExtrema(bars, i, end)
		totalRange := hi - lo
		if totalRange <= 0 {
			continue
		}
		if netMove < cfg.MinATRMultiplier*bars[i].ATR {
			continue
		}

		bodySum := windowBodySum(bars, i, end)
		if bodySum/totalRange < cfg.MinBodyRatio {
			continue
		}

		internalRetr := (endPrice - lo) / netMove
		if internalRetr > cfg.MaxInternalRetracement {
			continue
		}

		return types.Impulse{
			Direction:    types.Bearish,
			StartIdx:     i,
			EndIdx:       end,
			StartPrice:   startPrice,
			EndPrice:     endPrice,
			Range:        netMove,
			ExtremumHigh: hi,
			ExtremumLow:  lo,
		}, true
	}
	return types.Impulse{}, false
}

func windowExtrema(bars []types.Bar, from, to int) (high, low float64) {
	high, low = bars[from].High, bars[from].Low
	for k := from + 1; k <= to; k++ {
		if bars[k].High > high {
			high = bars[k].High
		}
		if bars[k].Low < low {
			low = bars[k].Low
		}
	}
	return high, low
}

func windowBodySum(bars []types.Bar, from, to int) float64 {
	sum := 0.0
	for k := from; k <= to; k++ {
		sum += absf(bars[k].Close - bars[k].Open)
	}
	return sum
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
