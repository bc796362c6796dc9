package testutils

import "github.com/evdnx/impulsefib/types"

// Candle is the raw [o,h,l,c,v] shape the spec's scenario seeds are written
// against. BuildBars gives every bar the same flat ATR, matching the
// "atr=5 throughout unless noted" convention.
type Candle struct {
	Open, High, Low, Close, Volume float64
}

// BuildBars turns a slice of candles into a bar series with a flat ATR and
// strictly increasing timestamps, starting at timestamp 0 one unit apart.
func BuildBars(candles []Candle, flatATR float64) []types.Bar {
	bars := make([]types.Bar, len(candles))
	for i, c := range candles {
		bars[i] = types.Bar{
			Timestamp: int64(i),
			Open:      c.Open,
			High:      c.High,
			Low:       c.Low,
			Close:     c.Close,
			Volume:    c.Volume,
			ATR:       flatATR,
			HasATR:    true,
		}
	}
	return bars
}

// FlatBars returns n consolidating candles at the given price with the
// supplied half-range, useful for padding a scenario past a scan window
// without manufacturing a new impulse or structure break.
func FlatBars(n int, price, halfRange, volume float64) []Candle {
	out := make([]Candle, n)
	for i := range out {
		out[i] = Candle{
			Open:   price,
			High:   price + halfRange,
			Low:    price - halfRange,
			Close:  price,
			Volume: volume,
		}
	}
	return out
}
