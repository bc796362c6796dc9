package indicator

import (
	"testing"

	"github.com/evdnx/impulsefib/testutils"
)

func TestComputeATRMarksIneligiblePrefix(t *testing.T) {
	bars := testutils.BuildBars(testutils.FlatBars(10, 100, 1, 1000), 0)
	for i := range bars {
		bars[i].ATR = 0
		bars[i].HasATR = false
	}
	out := ComputeATR(bars, 5)
	for i := 0; i < 4; i++ {
		if out[i].HasATR {
			t.Fatalf("bar %d should be ATR-ineligible", i)
		}
	}
	for i := 4; i < len(out); i++ {
		if !out[i].HasATR {
			t.Fatalf("bar %d should have ATR", i)
		}
	}
}

func TestComputeATRFlatSeriesIsZero(t *testing.T) {
	bars := testutils.BuildBars(testutils.FlatBars(10, 100, 0, 1000), 0)
	out := ComputeATR(bars, 5)
	if out[5].ATR != 0 {
		t.Fatalf("expected zero ATR on a flat series, got %v", out[5].ATR)
	}
}

func TestComputeSwingsDetectsIsolatedExtremum(t *testing.T) {
	candles := testutils.FlatBars(9, 100, 1, 1000)
	candles[4].High = 200
	candles[4].Low = 50
	bars := testutils.BuildBars(candles, 5)
	swings := ComputeSwings(bars, 2)
	if !swings[4].SwingHigh || !swings[4].SwingLow {
		t.Fatalf("expected bar 4 to be both swing high and low, got %+v", swings[4])
	}
	if swings[0].SwingHigh || swings[0].SwingLow {
		t.Fatalf("edge bar should not be evaluated, got %+v", swings[0])
	}
}
