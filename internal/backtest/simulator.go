package backtest

import (
	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// ProgressFunc is called after each simulated bar with the 1-based bar
// number and the total bar count.
type ProgressFunc func(current, total int)

// Simulate runs the sequential FLAT/LONG state machine over the signal
// series in strict chronological order. At every bar:
//
//   - FLAT and entry[i]: open a position at close[i]. The exit signal is
//     not evaluated on the bar a position just opened, so the earliest
//     possible exit is the following bar.
//   - LONG and exit[i]: close at close[i] and append the trade.
//   - anything else: no-op.
//
// A position still open after the last bar is force-closed at that bar's
// close and recorded with ForceClosed set. This end-of-data policy is
// deterministic: no open position is ever silently dropped.
//
// Mismatched signal lengths are a fatal precondition violation reported
// before the first bar is touched.
func Simulate(series types.Series, entry, exit types.SignalSeries) ([]types.Trade, error) {
	return SimulateWithProgress(series, entry, exit, nil)
}

// SimulateWithProgress is Simulate with a per-bar progress callback.
func SimulateWithProgress(series types.Series, entry, exit types.SignalSeries, onProgress ProgressFunc) ([]types.Trade, error) {
	if len(entry) != len(series) || len(exit) != len(series) {
		return nil, errors.Newf(errors.ErrCodeSignalLengthMismatch,
			"signal length mismatch: %d bars, %d entry signals, %d exit signals",
			len(series), len(entry), len(exit))
	}

	trades := []types.Trade{}

	var position *types.Position

	for i, bar := range series {
		if onProgress != nil {
			onProgress(i+1, len(series))
		}

		if position == nil {
			if entry[i] {
				position = &types.Position{
					EntryIndex: i,
					EntryTime:  bar.Time,
					EntryPrice: bar.Close,
				}
			}

			continue
		}

		if exit[i] {
			trades = append(trades, types.NewTrade(*position, i, bar.Time, bar.Close, false))
			position = nil
		}
	}

	if position != nil {
		last := len(series) - 1
		trades = append(trades, types.NewTrade(*position, last, series[last].Time, series[last].Close, true))
	}

	return trades, nil
}
