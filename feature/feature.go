// Package feature turns an assembled Pattern into the fixed-width
// FeatureVector consumed by downstream model training (§4.5).
package feature

import (
	"math"

	"github.com/evdnx/impulsefib/types"
)

// Extract computes the feature vector for a single pattern against the bar
// series it was detected on.
func Extract(bars []types.Bar, p types.Pattern) types.FeatureVector {
	imp := p.Impulse
	pb := p.Pullback

	impBars := bars[imp.StartIdx : imp.EndIdx+1]
	pbBars := bars[pb.StartIdx : pb.EndIdx+1]

	avgATR := meanATR(impBars)
	impRangeATR := 0.0
	if avgATR > 0 {
		impRangeATR = imp.Range / avgATR
	}

	impBodies := bodies(impBars)
	pbBodies := bodies(pbBars)
	impBodyStd := stddev(impBodies)
	volContraction := 1.0
	if impBodyStd > 0 {
		volContraction = stddev(pbBodies) / impBodyStd
	}

	pbEnd := bars[pb.EndIdx]
	pbEndRange := pbEnd.High - pbEnd.Low
	wickRatio := 0.0
	if pbEndRange > 0 {
		wickTotal := pbEndRange - absf(pbEnd.Close-pbEnd.Open)
		wickRatio = wickTotal / pbEndRange
	}

	breakBar := bars[p.Structure.EntryIdx]
	breakRange := breakBar.High - breakBar.Low
	breakStrength := 0.0
	if breakRange > 0 {
		breakStrength = absf(breakBar.Close-breakBar.Open) / breakRange
	}

	impVolAvg := meanVolume(impBars)
	pbVolAvg := meanVolume(pbBars)
	volRatio := 1.0
	if pbVolAvg > 0 {
		volRatio = impVolAvg / pbVolAvg
	}

	isBullish := 0.0
	if imp.Direction == types.Bullish {
		isBullish = 1.0
	}

	return types.FeatureVector{
		ImpulseRangeATR:        impRangeATR,
		ImpulseDuration:        len(impBars),
		PullbackDepth:          pb.Depth,
		PullbackDuration:       len(pbBars),
		VolatilityContraction:  volContraction,
		ExtremumWickRatio:      wickRatio,
		StructureBreakStrength: breakStrength,
		VolumeRatio:            volRatio,
		IsBullish:              isBullish,
	}
}

// ExtractAll extracts a feature vector for every pattern, in order.
func ExtractAll(bars []types.Bar, patterns []types.Pattern) []types.FeatureVector {
	out := make([]types.FeatureVector, len(patterns))
	for i, p := range patterns {
		out[i] = Extract(bars, p)
	}
	return out
}

func meanATR(bars []types.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.ATR
	}
	return sum / float64(len(bars))
}

func meanVolume(bars []types.Bar) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}

func bodies(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = absf(b.Close - b.Open)
	}
	return out
}

// stddev is the sample standard deviation (ddof=1), matching pandas' default
// Series.std() used by the reference feature engineer.
func stddev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
