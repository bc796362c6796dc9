package pattern

import (
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/types"
)

// ValidateStructure scans forward from the pullback's end for a confirmed
// breakout of the impulse extremum (§4.3). Within a single bar the
// breakout test is evaluated before the invalidation test.
func ValidateStructure(bars []types.Bar, pullback types.Pullback, cfg config.StructureRequirements) (types.Structure, bool) {
	start := pullback.EndIdx + 1
	if start >= len(bars) {
		return types.Structure{}, false
	}

	end := start + cfg.ConfirmationScanBars
	if end > len(bars) {
		end = len(bars)
	}

	imp := pullback.Impulse
	for i := start; i < end; i++ {
		close := bars[i].Close

		if imp.Direction == types.Bullish {
			if close > imp.ExtremumHigh {
				return types.Structure{
					EntryIdx:     i,
					EntryPrice:   close,
					Confirmation: types.ConfirmBeyondHigh,
				}, true
			}
			if close < pullback.Low {
				return types.Structure{}, false
			}
			continue
		}

		// Bearish.
		if close < imp.ExtremumLow {
			return types.Structure{
				EntryIdx:     i,
				EntryPrice:   close,
				Confirmation: types.ConfirmBeyondLow,
			}, true
		}
		if close > pullback.High {
			return types.Structure{}, false
		}
	}
	return types.Structure{}, false
}
