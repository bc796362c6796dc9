package pattern

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/logger"
	"github.com/evdnx/impulsefib/types"
)

// Detector bundles the configuration shared across the three recognizers,
// mirroring the teacher's BaseStrategy composition: the concrete stages
// (impulse, pullback, structure) all read from one immutable Cfg and
// report through one Log.
type Detector struct {
	Cfg config.Config
	Log logger.Logger
}

// NewDetector validates cfg and returns a ready-to-use Detector.
func NewDetector(cfg config.Config, log logger.Logger) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{Cfg: cfg, Log: log}, nil
}

// DetectPatterns runs the full assembler over a bar series (§4.4):
// impulse -> pullback -> structure, emitting a Pattern only when all three
// succeed. Patterns are emitted in impulse-start order; overlapping
// impulses are not deduplicated (§9 open question 4).
func (d *Detector) DetectPatterns(bars []types.Bar) []types.Pattern {
	if len(bars) < d.Cfg.MinBars() {
		if d.Log != nil {
			d.Log.Warn("insufficient_data",
				logger.Int("have", len(bars)),
				logger.Int("need", d.Cfg.MinBars()))
		}
		return nil
	}

	impulses := DetectImpulses(bars, d.Cfg.ImpulseDetection)
	if d.Log != nil {
		d.Log.Info("impulses_detected", logger.Int("count", len(impulses)))
	}

	var patterns []types.Pattern
	for _, imp := range impulses {
		pb, ok := MeasurePullback(bars, imp, d.Cfg.PullbackDetection)
		if !ok {
			continue
		}
		st, ok := ValidateStructure(bars, pb, d.Cfg.StructureRequirements)
		if !ok {
			continue
		}
		patterns = append(patterns, types.Pattern{
			Impulse:        imp,
			Pullback:       pb,
			Structure:      st,
			Continuation:   EvaluateContinuation(imp, st, bars),
			ImpulseStartTS: bars[imp.StartIdx].Timestamp,
		})
	}
	if d.Log != nil {
		d.Log.Info("patterns_assembled", logger.Int("count", len(patterns)))
	}
	return patterns
}

// EvaluateContinuation is the coarse forward-look test attached to each
// Pattern (§3, §9 open question 2): did price continue at least half the
// impulse range within 20 bars of entry? This is distinct from both the
// labeler's binary Label and the simulator's R-multiple.
func EvaluateContinuation(imp types.Impulse, st types.Structure, bars []types.Bar) bool {
	const targetBars = 20
	const continuationFraction = 0.5

	entryIdx := st.EntryIdx
	endIdx := entryIdx + targetBars
	if endIdx > len(bars)-1 {
		endIdx = len(bars) - 1
	}
	if entryIdx+1 > endIdx {
		return false
	}

	if imp.Direction == types.Bullish {
		maxFuture := bars[entryIdx+1].High
		for i := entryIdx + 2; i <= endIdx; i++ {
			if bars[i].High > maxFuture {
				maxFuture = bars[i].High
			}
		}
		return maxFuture >= st.EntryPrice+continuationFraction*imp.Range
	}

	minFuture := bars[entryIdx+1].Low
	for i := entryIdx + 2; i <= endIdx; i++ {
		if bars[i].Low < minFuture {
			minFuture = bars[i].Low
		}
	}
	return minFuture <= st.EntryPrice-continuationFraction*imp.Range
}
