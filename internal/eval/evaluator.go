// Package eval turns a parsed rule into a per-bar boolean signal series.
// Evaluation is a single vectorized pass: every AST node maps to an
// elementwise or windowed operation over the whole price history. Missing
// data never raises; a comparison with an undefined operand is false and is
// only tallied in the diagnostics.
package eval

import (
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/dsl"
	"github.com/helios-quant/rulebench/internal/indicator"
	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Diagnostics reports non-fatal conditions observed during evaluation.
type Diagnostics struct {
	// UndefinedBars counts bar evaluations that degraded to false because
	// an operand was undefined (warm-up, lookback horizon, zero division).
	UndefinedBars int
}

// Evaluator evaluates rule ASTs against a price series. It holds only the
// indicator registry, so a single Evaluator may serve concurrent runs.
type Evaluator struct {
	registry *indicator.Registry
}

// New creates an Evaluator backed by the given indicator registry.
func New(registry *indicator.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate walks the AST once against the whole series and returns a signal
// series of identical length. The node must resolve to a boolean; numeric
// nodes in boolean position (or vice versa deeper in the tree) surface a
// type-mismatch error even though the parser should have rejected them.
func (e *Evaluator) Evaluate(node dsl.Node, series types.Series) (types.SignalSeries, Diagnostics, error) {
	diag := Diagnostics{}

	signals, err := e.evalBool(node, series, &diag)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	return signals, diag, nil
}

func (e *Evaluator) evalBool(node dsl.Node, series types.Series, diag *Diagnostics) (types.SignalSeries, error) {
	switch n := node.(type) {
	case dsl.Comparison:
		return e.evalComparison(n, series, diag)
	case dsl.LogicalOp:
		return e.evalLogical(n, series, diag)
	case dsl.Cross:
		return e.evalCross(n, series, diag)
	case dsl.FieldRef, dsl.IndicatorCall, dsl.Literal:
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			"numeric expression evaluated in boolean context")
	default:
		return nil, errors.Newf(errors.ErrCodeTypeMismatch, "unhandled node kind %T", node)
	}
}

func (e *Evaluator) evalNumeric(node dsl.Node, series types.Series) (types.ValueSeries, error) {
	switch n := node.(type) {
	case dsl.FieldRef:
		return evalFieldRef(n, series), nil
	case dsl.IndicatorCall:
		spec, err := e.registry.Lookup(n.Name)
		if err != nil {
			return nil, err
		}

		return spec.Compute(series.Closes(), n.Args)
	case dsl.Literal:
		values := types.NewValueSeries(len(series))
		for i := range values {
			values[i] = optional.Some(n.Value)
		}

		return values, nil
	case dsl.Comparison, dsl.LogicalOp, dsl.Cross:
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			"boolean expression evaluated in numeric context")
	default:
		return nil, errors.Newf(errors.ErrCodeTypeMismatch, "unhandled node kind %T", node)
	}
}

// evalFieldRef shifts the field column by the lookback offset. Bars before
// the shift horizon are undefined.
func evalFieldRef(ref dsl.FieldRef, series types.Series) types.ValueSeries {
	values := types.NewValueSeries(len(series))
	shift := -ref.Lookback

	for i := shift; i < len(series); i++ {
		values[i] = optional.Some(series[i-shift].Field(ref.Field))
	}

	return values
}

func (e *Evaluator) evalComparison(cmp dsl.Comparison, series types.Series, diag *Diagnostics) (types.SignalSeries, error) {
	left, err := e.evalNumeric(cmp.Left, series)
	if err != nil {
		return nil, err
	}

	right, err := e.evalNumeric(cmp.Right, series)
	if err != nil {
		return nil, err
	}

	signals := make(types.SignalSeries, len(series))

	for i := range series {
		if left[i].IsNone() || right[i].IsNone() {
			diag.UndefinedBars++
			continue
		}

		fired, err := compare(cmp.Op, left[i].Unwrap(), right[i].Unwrap())
		if err != nil {
			return nil, err
		}

		signals[i] = fired
	}

	return signals, nil
}

func compare(op dsl.CompareOp, left, right float64) (bool, error) {
	switch op {
	case dsl.CompareGT:
		return left > right, nil
	case dsl.CompareLT:
		return left < right, nil
	case dsl.CompareGE:
		return left >= right, nil
	case dsl.CompareLE:
		return left <= right, nil
	case dsl.CompareEQ:
		return left == right, nil
	default:
		return false, errors.Newf(errors.ErrCodeUnexpectedToken, "unknown comparison operator %q", op)
	}
}

func (e *Evaluator) evalLogical(op dsl.LogicalOp, series types.Series, diag *Diagnostics) (types.SignalSeries, error) {
	left, err := e.evalBool(op.Left, series, diag)
	if err != nil {
		return nil, err
	}

	right, err := e.evalBool(op.Right, series, diag)
	if err != nil {
		return nil, err
	}

	signals := make(types.SignalSeries, len(series))

	for i := range signals {
		if op.Op == dsl.LogicalAnd {
			signals[i] = left[i] && right[i]
		} else {
			signals[i] = left[i] || right[i]
		}
	}

	return signals, nil
}

// evalCross fires at bar i when the series crosses the threshold between
// i-1 and i in the requested direction. Bar 0 never fires; a bar with any
// undefined operand at i or i-1 never fires. The test is stateless: a new
// cross re-arms as soon as the series is back on the origin side of the
// threshold.
func (e *Evaluator) evalCross(cross dsl.Cross, series types.Series, diag *Diagnostics) (types.SignalSeries, error) {
	values, err := e.evalNumeric(cross.Series, series)
	if err != nil {
		return nil, err
	}

	threshold, err := e.evalNumeric(cross.Threshold, series)
	if err != nil {
		return nil, err
	}

	signals := make(types.SignalSeries, len(series))

	for i := 1; i < len(series); i++ {
		if values[i].IsNone() || values[i-1].IsNone() || threshold[i].IsNone() || threshold[i-1].IsNone() {
			diag.UndefinedBars++
			continue
		}

		prevValue, curValue := values[i-1].Unwrap(), values[i].Unwrap()
		prevThreshold, curThreshold := threshold[i-1].Unwrap(), threshold[i].Unwrap()

		switch cross.Direction {
		case dsl.CrossAbove:
			signals[i] = prevValue <= prevThreshold && curValue > curThreshold
		case dsl.CrossBelow:
			signals[i] = prevValue >= prevThreshold && curValue < curThreshold
		}
	}

	return signals, nil
}
