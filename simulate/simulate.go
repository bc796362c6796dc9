// Package simulate runs the rule-based backtest that produces R-multiple
// trade records for a batch of patterns (§4.7). Unlike the labeler, it uses
// the conservative two-target TP (the nearer of a Fibonacci extension and a
// fixed-RR target) and continues past both SL and TP misses to a timed-out
// mark-to-close exit instead of defaulting to failure.
package simulate

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/risk"
	"github.com/evdnx/impulsefib/types"
)

// Trade simulates one pattern forward and returns its TradeRecord.
func Trade(bars []types.Bar, p types.Pattern, cfg config.RiskManagement) types.TradeRecord {
	imp := p.Impulse
	pb := p.Pullback
	st := p.Structure

	atrAtPullbackEnd := bars[pb.EndIdx].ATR
	sl, tp := risk.SimTargets(imp.Direction, st.EntryPrice, pb.Low, pb.High, atrAtPullbackEnd,
		cfg.StopLoss.BufferATR, cfg.SimRRTarget, cfg.FibExtension,
		imp.ExtremumHigh, imp.ExtremumLow, imp.Range)

	riskAmt, rewardAmt, rr := risk.RiskReward(st.EntryPrice, sl, tp)

	end := st.EntryIdx + cfg.MaxBarsInTrade
	if end > len(bars)-1 {
		end = len(bars) - 1
	}

	for i := st.EntryIdx + 1; i <= end; i++ {
		high := bars[i].High
		low := bars[i].Low

		if imp.Direction == types.Bullish {
			if low <= sl {
				return types.TradeRecord{
					EntryIdx: st.EntryIdx, ExitIdx: i,
					EntryPrice: st.EntryPrice, ExitPrice: sl,
					Direction: imp.Direction, Risk: riskAmt, Reward: rewardAmt,
					RMultiple: -1.0, Timestamp: bars[st.EntryIdx].Timestamp,
				}
			}
			if high >= tp {
				return types.TradeRecord{
					EntryIdx: st.EntryIdx, ExitIdx: i,
					EntryPrice: st.EntryPrice, ExitPrice: tp,
					Direction: imp.Direction, Risk: riskAmt, Reward: rewardAmt,
					RMultiple: rr, Timestamp: bars[st.EntryIdx].Timestamp,
				}
			}
			continue
		}

		if high >= sl {
			return types.TradeRecord{
				EntryIdx: st.EntryIdx, ExitIdx: i,
				EntryPrice: st.EntryPrice, ExitPrice: sl,
				Direction: imp.Direction, Risk: riskAmt, Reward: rewardAmt,
				RMultiple: -1.0, Timestamp: bars[st.EntryIdx].Timestamp,
			}
		}
		if low <= tp {
			return types.TradeRecord{
				EntryIdx: st.EntryIdx, ExitIdx: i,
				EntryPrice: st.EntryPrice, ExitPrice: tp,
				Direction: imp.Direction, Risk: riskAmt, Reward: rewardAmt,
				RMultiple: rr, Timestamp: bars[st.EntryIdx].Timestamp,
			}
		}
	}

	return timedOutExit(bars, st, imp.Direction, riskAmt, rewardAmt, end)
}

// timedOutExit marks the trade to the close of the last bar of the budget
// when neither SL nor TP was touched.
func timedOutExit(bars []types.Bar, st types.Structure, dir types.Direction, riskAmt, rewardAmt float64, exitIdx int) types.TradeRecord {
	exitPrice := bars[exitIdx].Close
	rMultiple := 0.0
	if riskAmt > 0 {
		if dir == types.Bullish {
			rMultiple = (exitPrice - st.EntryPrice) / riskAmt
		} else {
			rMultiple = (st.EntryPrice - exitPrice) / riskAmt
		}
	}
	return types.TradeRecord{
		EntryIdx: st.EntryIdx, ExitIdx: exitIdx,
		EntryPrice: st.EntryPrice, ExitPrice: exitPrice,
		Direction: dir, Risk: riskAmt, Reward: rewardAmt,
		RMultiple: rMultiple, Timestamp: bars[st.EntryIdx].Timestamp,
	}
}

// TradeAll simulates every pattern in order.
func TradeAll(bars []types.Bar, patterns []types.Pattern, cfg config.RiskManagement) []types.TradeRecord {
	out := make([]types.TradeRecord, len(patterns))
	for i, p := range patterns {
		out[i] = Trade(bars, p, cfg)
	}
	return out
}
