// Package config holds the single immutable configuration struct consumed
// at pipeline construction, per the external interface in spec §6.
package config

import (
	"fmt"

	"github.com/evdnx/impulsefib/types"
)

// ImpulseDetection tunes the impulse recognizer (§4.1).
type ImpulseDetection struct {
	MinCandles             int     `yaml:"min_candles"`
	LengthSpan             int     `yaml:"length_span"`
	MinATRMultiplier       float64 `yaml:"min_atr_multiplier"`
	MinBodyRatio           float64 `yaml:"min_body_ratio"`
	MaxInternalRetracement float64 `yaml:"max_internal_retracement"`
}

// FibRange bounds the accepted pullback depth.
type FibRange struct {
	Min float64 `yaml:"min"` // e.g. 0.382
	Max float64 `yaml:"max"` // e.g. 0.786
}

// PullbackDetection tunes the pullback measurer (§4.2).
type PullbackDetection struct {
	MaxDurationCandles int      `yaml:"max_duration_candles"`
	FibRange           FibRange `yaml:"fib_range"`
	RequireSlowdown    bool     `yaml:"require_slowdown"`
}

// StructureRequirements tunes the structure validator (§4.3).
type StructureRequirements struct {
	ConfirmationScanBars int `yaml:"confirmation_scan_bars"`
}

// Indicator tunes the ATR/swing precompute stage that runs ahead of
// detection (§2 row 1).
type Indicator struct {
	ATRPeriod     int `yaml:"atr_period"`
	SwingLookback int `yaml:"swing_lookback"`
}

// StopLoss configures the ATR-buffer stop used by the labeler and the
// simulator.
type StopLoss struct {
	BufferATR float64 `yaml:"buffer_atr"`
}

// RiskManagement tunes the labeler (§4.6) and the simulator (§4.7).
type RiskManagement struct {
	MaxBarsInTrade int      `yaml:"max_bars_in_trade"`
	StopLoss       StopLoss `yaml:"stop_loss"`
	LabelTargetRR  float64  `yaml:"label_target_rr"` // default 1.5
	SimRRTarget    float64  `yaml:"sim_rr_target"`   // default 2.5
	FibExtension   float64  `yaml:"fib_extension"`   // default 0.272
}

// Config is the single immutable configuration struct. It is validated
// once at construction and never mutated afterwards.
type Config struct {
	Indicator             Indicator             `yaml:"indicator"`
	ImpulseDetection      ImpulseDetection      `yaml:"impulse_detection"`
	PullbackDetection     PullbackDetection     `yaml:"pullback_detection"`
	StructureRequirements StructureRequirements `yaml:"structure_requirements"`
	RiskManagement        RiskManagement        `yaml:"risk_management"`
}

// Default returns the configuration implied by spec §6's defaults and the
// scenario seeds in §8.
func Default() Config {
	return Config{
		Indicator: Indicator{
			ATRPeriod:     14,
			SwingLookback: 3,
		},
		ImpulseDetection: ImpulseDetection{
			MinCandles:             4,
			LengthSpan:             10,
			MinATRMultiplier:       2.0,
			MinBodyRatio:           0.6,
			MaxInternalRetracement: 0.3,
		},
		PullbackDetection: PullbackDetection{
			MaxDurationCandles: 15,
			FibRange:           FibRange{Min: 0.382, Max: 0.786},
			RequireSlowdown:    true,
		},
		StructureRequirements: StructureRequirements{
			ConfirmationScanBars: 40,
		},
		RiskManagement: RiskManagement{
			MaxBarsInTrade: 20,
			StopLoss:       StopLoss{BufferATR: 0.5},
			LabelTargetRR:  1.5,
			SimRRTarget:    2.5,
			FibExtension:   0.272,
		},
	}
}

// Validate checks that all numeric fields are within sensible bounds and
// returns the first violated invariant, mirroring the teacher's
// "first-error-wins" validation style.
func (c *Config) Validate() error {
	ind := c.Indicator
	if ind.ATRPeriod <= 0 {
		return &types.ConfigInvalidError{Reason: "indicator.atr_period must be positive"}
	}
	if ind.SwingLookback <= 0 {
		return &types.ConfigInvalidError{Reason: "indicator.swing_lookback must be positive"}
	}

	id := c.ImpulseDetection
	if id.MinCandles <= 0 {
		return &types.ConfigInvalidError{Reason: "impulse_detection.min_candles must be positive"}
	}
	if id.LengthSpan <= 0 {
		return &types.ConfigInvalidError{Reason: "impulse_detection.length_span must be positive"}
	}
	if id.MinATRMultiplier <= 0 {
		return &types.ConfigInvalidError{Reason: "impulse_detection.min_atr_multiplier must be positive"}
	}
	if id.MinBodyRatio < 0 || id.MinBodyRatio > 1 {
		return &types.ConfigInvalidError{Reason: fmt.Sprintf("impulse_detection.min_body_ratio (%f) must be in [0,1]", id.MinBodyRatio)}
	}
	if id.MaxInternalRetracement < 0 {
		return &types.ConfigInvalidError{Reason: "impulse_detection.max_internal_retracement cannot be negative"}
	}

	pb := c.PullbackDetection
	if pb.MaxDurationCandles <= 0 {
		return &types.ConfigInvalidError{Reason: "pullback_detection.max_duration_candles must be positive"}
	}
	if pb.FibRange.Min >= pb.FibRange.Max {
		return &types.ConfigInvalidError{Reason: "pullback_detection.fib_range.min must be < fib_range.max"}
	}
	if pb.FibRange.Min < 0 {
		return &types.ConfigInvalidError{Reason: "pullback_detection.fib_range.min cannot be negative"}
	}

	sr := c.StructureRequirements
	if sr.ConfirmationScanBars <= 0 {
		return &types.ConfigInvalidError{Reason: "structure_requirements.confirmation_scan_bars must be positive"}
	}

	rm := c.RiskManagement
	if rm.MaxBarsInTrade <= 0 {
		return &types.ConfigInvalidError{Reason: "risk_management.max_bars_in_trade must be positive"}
	}
	if rm.StopLoss.BufferATR < 0 {
		return &types.ConfigInvalidError{Reason: "risk_management.stop_loss.buffer_atr cannot be negative"}
	}
	if rm.LabelTargetRR <= 0 {
		return &types.ConfigInvalidError{Reason: "risk_management.label_target_rr must be positive"}
	}
	if rm.SimRRTarget <= 0 {
		return &types.ConfigInvalidError{Reason: "risk_management.sim_rr_target must be positive"}
	}
	if rm.FibExtension < 0 {
		return &types.ConfigInvalidError{Reason: "risk_management.fib_extension cannot be negative"}
	}

	// InsufficientData threshold (§7): the minimum bar count for a single
	// pattern to ever be emitted and fully simulated.
	minBars := id.MinCandles + id.LengthSpan - 1 +
		pb.MaxDurationCandles +
		sr.ConfirmationScanBars +
		rm.MaxBarsInTrade
	if minBars <= 0 {
		return &types.ConfigInvalidError{Reason: "derived minimum bar count must be positive"}
	}

	return nil
}

// MinBars returns the fewest bars required for the pipeline to have any
// chance of emitting a pattern, per the InsufficientData taxonomy in §7.
func (c *Config) MinBars() int {
	id := c.ImpulseDetection
	pb := c.PullbackDetection
	sr := c.StructureRequirements
	rm := c.RiskManagement
	return id.MinCandles + id.LengthSpan - 1 +
		pb.MaxDurationCandles +
		sr.ConfirmationScanBars +
		rm.MaxBarsInTrade
}
