// Package indicator precomputes the ATR and swing markers described in
// spec §2 row 1. This stage sits outside the core (§1 lists ATR/swing
// precompute as trivial rolling math handled by an external collaborator)
// but is implemented here so the pipeline can be exercised end to end
// without a caller-supplied indicator feed.
package indicator

import "github.com/evdnx/impulsefib/types"

// ComputeATR applies Wilder's smoothing to a bar series and returns a new
// slice with ATR and HasATR populated. Bars before the (period-1)th index
// have no ATR and are marked ineligible, per the Bar invariant in §3.
func ComputeATR(bars []types.Bar, period int) []types.Bar {
	out := make([]types.Bar, len(bars))
	copy(out, bars)
	for i := range out {
		out[i].ATR = 0
		out[i].HasATR = false
	}
	if period <= 0 || len(bars) < period {
		return out
	}

	trueRanges := make([]float64, len(bars))
	trueRanges[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := absf(bars[i].High - bars[i-1].Close)
		lc := absf(bars[i].Low - bars[i-1].Close)
		trueRanges[i] = maxf(hl, maxf(hc, lc))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trueRanges[i]
	}
	out[period-1].ATR = sum / float64(period)
	out[period-1].HasATR = true

	for i := period; i < len(bars); i++ {
		prev := out[i-1].ATR
		out[i].ATR = (prev*float64(period-1) + trueRanges[i]) / float64(period)
		out[i].HasATR = true
	}
	return out
}

// SwingMarker flags a bar as a local swing high and/or swing low over a
// symmetric lookback window. Swing markers are advisory only (§6 input
// contract) and are not consumed by the core recognizers.
type SwingMarker struct {
	SwingHigh bool
	SwingLow  bool
}

// ComputeSwings returns one SwingMarker per bar: a bar is a swing high
// (low) when its high (low) is the strict extremum within lookback bars on
// either side.
func ComputeSwings(bars []types.Bar, lookback int) []SwingMarker {
	out := make([]SwingMarker, len(bars))
	if lookback <= 0 {
		return out
	}
	for i := range bars {
		lo, hi := i-lookback, i+lookback
		if lo < 0 || hi >= len(bars) {
			continue
		}
		isHigh, isLow := true, true
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			if bars[j].High >= bars[i].High {
				isHigh = false
			}
			if bars[j].Low <= bars[i].Low {
				isLow = false
			}
		}
		out[i] = SwingMarker{SwingHigh: isHigh, SwingLow: isLow}
	}
	return out
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
