// Package indicator implements the technical indicators available to trading
// rules. Every indicator is a pure function over a numeric series that
// returns a ValueSeries of identical length; bars inside the warm-up window
// are undefined (None) rather than zero or NaN.
package indicator

import (
	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Indicator names as they appear in rule text.
const (
	NameSMA       = "SMA"
	NameEMA       = "EMA"
	NameRSI       = "RSI"
	NamePctChange = "PCT_CHANGE"
)

// RSISmoothing selects the average gain/loss smoothing variant used by RSI.
type RSISmoothing string

const (
	// RSISmoothingWilder uses Wilder's recursive smoothing.
	RSISmoothingWilder RSISmoothing = "wilder"
	// RSISmoothingSimple uses a plain moving average of gains and losses.
	RSISmoothingSimple RSISmoothing = "simple"
)

// Compute calculates an indicator over a numeric series. The args slice
// holds the literal parameters from the rule text, already arity-checked by
// the parser against the registry spec.
type Compute func(values []float64, args []float64) (types.ValueSeries, error)

// Spec describes one registered indicator: its rule-text name, the number of
// literal arguments it accepts and its compute function.
type Spec struct {
	Name    string
	MinArgs int
	MaxArgs int
	Compute Compute
}

// period converts a literal argument into a positive integer period.
func period(name string, arg float64) (int, error) {
	p := int(arg)
	if float64(p) != arg {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be an integer, got %g", name, arg)
	}

	if p <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, p)
	}

	return p, nil
}
