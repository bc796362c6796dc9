// Package label assigns the binary success/failure label used as the
// training target, by simulating a fixed-RR trade against the ATR-buffer
// stop (§4.6).
package label

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/risk"
	"github.com/evdnx/impulsefib/types"
)

// Assign simulates one pattern forward from its entry bar and returns the
// binary label: LabelSuccess if the target is hit before the stop or the
// bar budget runs out, LabelFailure otherwise (including a timed-out trade,
// which the reference labeler also scores as failure).
func Assign(bars []types.Bar, p types.Pattern, cfg config.RiskManagement) types.Label {
	imp := p.Impulse
	pb := p.Pullback
	st := p.Structure

	atrAtPullbackEnd := bars[pb.EndIdx].ATR
	sl, tp := risk.LabelTargets(imp.Direction, st.EntryPrice, pb.Low, pb.High, atrAtPullbackEnd, cfg.StopLoss.BufferATR, cfg.LabelTargetRR)

	endSearch := st.EntryIdx + cfg.MaxBarsInTrade
	if endSearch > len(bars)-1 {
		endSearch = len(bars) - 1
	}

	for i := st.EntryIdx + 1; i <= endSearch; i++ {
		high := bars[i].High
		low := bars[i].Low

		if imp.Direction == types.Bullish {
			if low <= sl {
				return types.LabelFailure
			}
			if high >= tp {
				return types.LabelSuccess
			}
			continue
		}

		if high >= sl {
			return types.LabelFailure
		}
		if low <= tp {
			return types.LabelSuccess
		}
	}
	return types.LabelFailure
}

// AssignAll labels every pattern in order.
func AssignAll(bars []types.Bar, patterns []types.Pattern, cfg config.RiskManagement) []types.Label {
	out := make([]types.Label, len(patterns))
	for i, p := range patterns {
		out[i] = Assign(bars, p, cfg)
	}
	return out
}
