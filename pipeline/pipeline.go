// Package pipeline wires the precompute, detection, and per-pattern
// derivation stages into the end-to-end orchestration described in §5:
// indicator precompute -> pattern assembly -> feature/label/simulate
// (fanned out per pattern) -> aggregation, with a per-symbol cancellation
// boundary over a batch of symbols.
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/evdnx/impulsefib/aggregate"
	"github.com/evdnx/impulsefib/config"
	"github.com/evdnx/impulsefib/feature"
	"github.com/evdnx/impulsefib/indicator"
	"github.com/evdnx/impulsefib/label"
	"github.com/evdnx/impulsefib/logger"
	"github.com/evdnx/impulsefib/metrics"
	"github.com/evdnx/impulsefib/pattern"
	"github.com/evdnx/impulsefib/simulate"
	"github.com/evdnx/impulsefib/types"
)

// Result bundles every artifact produced for one symbol's bar series.
type Result struct {
	Symbol   string
	Patterns []types.Pattern
	Features []types.FeatureVector
	Labels   []types.Label
	Trades   []types.TradeRecord
	Stats    aggregate.Stats
}

// Run executes the full per-symbol pipeline. Per-pattern feature
// extraction, labeling, and simulation are independent of one another and
// are fanned out concurrently via errgroup; a cancelled ctx aborts the
// in-flight fan-out for this symbol without affecting any other symbol a
// caller may be running through RunMany.
func Run(ctx context.Context, symbol string, bars []types.Bar, cfg config.Config, log logger.Logger) (Result, error) {
	if err := validateBars(bars); err != nil {
		return Result{}, err
	}

	bars = indicator.ComputeATR(bars, cfg.Indicator.ATRPeriod)

	det, err := pattern.NewDetector(cfg, log)
	if err != nil {
		return Result{}, err
	}
	patterns := det.DetectPatterns(bars)
	metrics.PatternsDetected.WithLabelValues(symbol).Add(float64(len(patterns)))

	features := make([]types.FeatureVector, len(patterns))
	labels := make([]types.Label, len(patterns))
	trades := make([]types.TradeRecord, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			features[i] = feature.Extract(bars, p)
			labels[i] = label.Assign(bars, p, cfg.RiskManagement)
			trades[i] = simulate.Trade(bars, p, cfg.RiskManagement)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	for _, l := range labels {
		metrics.LabelsEmitted.WithLabelValues(symbol, l.String()).Inc()
	}
	metrics.TradesSimulated.WithLabelValues(symbol).Add(float64(len(trades)))

	stats := aggregate.CalculateAndPublish(symbol, trades)

	if log != nil {
		log.Info("pipeline_run_complete",
			logger.String("symbol", symbol),
			logger.Int("patterns", len(patterns)),
			logger.Float64("win_rate", stats.WinRate),
			logger.Float64("net_profit_r", stats.NetProfitR))
	}

	return Result{
		Symbol:   symbol,
		Patterns: patterns,
		Features: features,
		Labels:   labels,
		Trades:   trades,
		Stats:    stats,
	}, nil
}

// Outcome pairs a symbol's Result with any error Run returned for it.
type Outcome struct {
	Result Result
	Err    error
}

// RunMany runs Run once per symbol concurrently. Each symbol gets its own
// errgroup-derived context inside Run, so one symbol's InputValidationError
// (fatal per that symbol) never aborts the other symbols in the batch. All
// symbols share ctx: cancelling it affects every symbol, and each symbol's
// Outcome holds either its complete Result or an error, never a partial
// Result.
func RunMany(ctx context.Context, bySymbol map[string][]types.Bar, cfg config.Config, log logger.Logger) map[string]Outcome {
	var mu sync.Mutex
	out := make(map[string]Outcome, len(bySymbol))

	var wg sync.WaitGroup
	for symbol, bars := range bySymbol {
		if ctx.Err() != nil {
			// Once ctx is done, stop starting new symbols. Symbols already
			// launched report their own outcome: Run returns an empty Result
			// and the context error if cancellation reaches its fan-out.
			break
		}
		symbol, bars := symbol, bars
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := Run(ctx, symbol, bars, cfg, log)
			mu.Lock()
			out[symbol] = Outcome{Result: res, Err: err}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// validateBars enforces the input contract (§6): ascending, strictly
// increasing timestamps, and sane OHLC/volume invariants. A bad bar is a
// fatal InputValidationError for this symbol (§7); it is never skipped
// or coerced.
func validateBars(bars []types.Bar) error {
	for i, b := range bars {
		if b.Volume < 0 {
			return &types.InputValidationError{Reason: "negative volume at bar index"}
		}
		if b.Low > b.Open || b.Low > b.Close || b.Low > b.High {
			return &types.InputValidationError{Reason: "low exceeds open/close/high at bar index"}
		}
		if b.High < b.Open || b.High < b.Close {
			return &types.InputValidationError{Reason: "high below open/close at bar index"}
		}
		if i > 0 && b.Timestamp <= bars[i-1].Timestamp {
			return &types.InputValidationError{Reason: "timestamps not strictly increasing"}
		}
	}
	return nil
}
