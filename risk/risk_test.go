package risk

import (
	"math"
	"testing"

	"github.com/evdnx/impulsefib/types"
)

func TestLabelTargetsBullish(t *testing.T) {
	sl, tp := LabelTargets(types.Bullish, 110, 100, 0, 5, 0.5, 1.5)
	wantSL := 100 - 0.5*5
	wantTP := 110 + 1.5*(110-wantSL)
	if sl != wantSL || tp != wantTP {
		t.Fatalf("got sl=%v tp=%v, want sl=%v tp=%v", sl, tp, wantSL, wantTP)
	}
}

func TestLabelTargetsBearish(t *testing.T) {
	sl, tp := LabelTargets(types.Bearish, 90, 0, 100, 5, 0.5, 1.5)
	wantSL := 100 + 0.5*5
	wantTP := 90 - 1.5*(wantSL-90)
	if sl != wantSL || tp != wantTP {
		t.Fatalf("got sl=%v tp=%v, want sl=%v tp=%v", sl, tp, wantSL, wantTP)
	}
}

func TestSimTargetsConservativeBullish(t *testing.T) {
	// Extension target closer than RR target -> extension wins (min).
	_, tp := SimTargets(types.Bullish, 110, 100, 0, 5, 0.5, 2.5, 0.272, 120, 0, 20)
	wantSL := 100 - 0.5*5
	tpExt := 120 + 0.272*20
	tpRR := 110 + 2.5*(110-wantSL)
	want := math.Min(tpExt, tpRR)
	if tp != want {
		t.Fatalf("tp = %v, want %v (ext=%v rr=%v)", tp, want, tpExt, tpRR)
	}
}

func TestScannerStopLossBullish(t *testing.T) {
	got := ScannerStopLoss(types.Bullish, 100)
	if got != 100*(1-0.003) {
		t.Fatalf("got %v, want %v", got, 100*(1-0.003))
	}
}

func TestScannerTakeProfit(t *testing.T) {
	sl := ScannerStopLoss(types.Bullish, 100)
	tp := ScannerTakeProfit(types.Bullish, 110, sl)
	risk := 110 - sl
	if tp != 110+2.0*risk {
		t.Fatalf("got %v, want %v", tp, 110+2.0*risk)
	}
}

func TestRiskRewardZeroRisk(t *testing.T) {
	risk, reward, ratio := RiskReward(100, 100, 110)
	if risk != 0 || reward != 10 || ratio != 0 {
		t.Fatalf("got risk=%v reward=%v ratio=%v", risk, reward, ratio)
	}
}
