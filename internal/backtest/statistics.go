package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// ComputeResult fills the aggregate metrics of a Result from a completed
// trade log. An empty log yields zero for every metric, documented on the
// Result fields.
func ComputeResult(trades []types.Trade, mode TotalReturnMode) (types.Result, error) {
	result := types.Result{
		Trades:     trades,
		TradeCount: len(trades),
	}

	if len(trades) == 0 {
		return result, nil
	}

	curve, err := cumulativeCurve(trades, mode)
	if err != nil {
		return types.Result{}, err
	}

	result.TotalReturn, _ = curve[len(curve)-1].Float64()
	result.MaxDrawdown = maxDrawdown(curve)

	wins := 0
	sum := decimal.Zero

	for _, trade := range trades {
		if trade.IsWin() {
			wins++
		}

		sum = sum.Add(decimal.NewFromFloat(trade.ReturnPct))
	}

	result.WinRate, _ = decimal.NewFromInt(int64(wins)).
		Div(decimal.NewFromInt(int64(len(trades)))).
		Mul(hundred).Float64()
	result.AverageReturn, _ = sum.Div(decimal.NewFromInt(int64(len(trades)))).Float64()

	return result, nil
}

// cumulativeCurve walks the trade log in order and builds the cumulative
// return curve in the configured mode. The curve starts at zero before the
// first trade so an opening loss registers as drawdown.
func cumulativeCurve(trades []types.Trade, mode TotalReturnMode) ([]decimal.Decimal, error) {
	curve := make([]decimal.Decimal, 0, len(trades)+1)
	curve = append(curve, decimal.Zero)

	switch mode {
	case TotalReturnSum:
		running := decimal.Zero
		for _, trade := range trades {
			running = running.Add(decimal.NewFromFloat(trade.ReturnPct))
			curve = append(curve, running)
		}
	case TotalReturnCompound:
		growth := decimal.NewFromInt(1)
		for _, trade := range trades {
			factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(trade.ReturnPct).Div(hundred))
			growth = growth.Mul(factor)
			curve = append(curve, growth.Sub(decimal.NewFromInt(1)).Mul(hundred))
		}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown total return mode %q", mode)
	}

	return curve, nil
}

// maxDrawdown returns the largest peak-to-trough decline of the curve,
// always >= 0.
func maxDrawdown(curve []decimal.Decimal) float64 {
	peak := curve[0]
	worst := decimal.Zero

	for _, point := range curve[1:] {
		if point.GreaterThan(peak) {
			peak = point
			continue
		}

		if dd := peak.Sub(point); dd.GreaterThan(worst) {
			worst = dd
		}
	}

	result, _ := worst.Float64()

	return result
}
