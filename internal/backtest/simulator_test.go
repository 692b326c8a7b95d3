package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

type SimulatorTestSuite struct {
	suite.Suite
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func barsFromCloses(closes ...float64) types.Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.Series, len(closes))

	for i, close := range closes {
		series[i] = types.Bar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: 1,
		}
	}

	return series
}

func (suite *SimulatorTestSuite) TestSingleRoundTrip() {
	// entry: close > 100, exit: close < 95
	series := barsFromCloses(90, 101, 102, 94, 99, 96)
	entry := types.SignalSeries{false, true, true, false, false, false}
	exit := types.SignalSeries{true, false, false, true, false, false}

	trades, err := Simulate(series, entry, exit)
	suite.NoError(err)
	suite.Require().Len(trades, 1)

	trade := trades[0]
	suite.Equal(1, trade.EntryIndex)
	suite.Equal(101.0, trade.EntryPrice)
	suite.Equal(3, trade.ExitIndex)
	suite.Equal(94.0, trade.ExitPrice)
	suite.InDelta(-6.93, trade.ReturnPct, 0.01)
	suite.False(trade.ForceClosed)
}

func (suite *SimulatorTestSuite) TestNoSameBarExit() {
	series := barsFromCloses(100, 90, 80)
	entry := types.SignalSeries{true, false, false}
	exit := types.SignalSeries{true, true, false}

	trades, err := Simulate(series, entry, exit)
	suite.NoError(err)
	suite.Require().Len(trades, 1)

	// the exit signal on the entry bar is not acted on
	suite.Equal(0, trades[0].EntryIndex)
	suite.Equal(1, trades[0].ExitIndex)
}

func (suite *SimulatorTestSuite) TestForceCloseAtEndOfData() {
	series := barsFromCloses(90, 101, 105, 110)
	entry := types.SignalSeries{false, true, false, false}
	exit := types.SignalSeries{false, false, false, false}

	trades, err := Simulate(series, entry, exit)
	suite.NoError(err)
	suite.Require().Len(trades, 1)

	trade := trades[0]
	suite.True(trade.ForceClosed)
	suite.Equal(1, trade.EntryIndex)
	suite.Equal(3, trade.ExitIndex)
	suite.Equal(110.0, trade.ExitPrice)
	suite.InDelta(8.910891, trade.ReturnPct, 1e-6)
}

func (suite *SimulatorTestSuite) TestMultipleTradesNeverOverlap() {
	series := barsFromCloses(1, 2, 3, 4, 5, 6, 7, 8)
	entry := types.SignalSeries{true, true, true, true, true, true, true, true}
	exit := types.SignalSeries{true, true, true, true, true, true, true, true}

	trades, err := Simulate(series, entry, exit)
	suite.NoError(err)
	suite.Require().Len(trades, 4)

	for k, trade := range trades {
		suite.Less(trade.EntryIndex, trade.ExitIndex)

		if k > 0 {
			suite.LessOrEqual(trades[k-1].ExitIndex, trade.EntryIndex)
		}
	}
}

func (suite *SimulatorTestSuite) TestEntrySignalIgnoredWhileLong() {
	series := barsFromCloses(10, 20, 30, 5)
	entry := types.SignalSeries{true, true, true, false}
	exit := types.SignalSeries{false, false, false, true}

	trades, err := Simulate(series, entry, exit)
	suite.NoError(err)
	suite.Require().Len(trades, 1)
	suite.Equal(0, trades[0].EntryIndex)
	suite.Equal(3, trades[0].ExitIndex)
}

func (suite *SimulatorTestSuite) TestNoSignalsNoTrades() {
	series := barsFromCloses(1, 2, 3)
	none := types.SignalSeries{false, false, false}

	trades, err := Simulate(series, none, none)
	suite.NoError(err)
	suite.Empty(trades)
}

func (suite *SimulatorTestSuite) TestEmptySeries() {
	trades, err := Simulate(types.Series{}, types.SignalSeries{}, types.SignalSeries{})
	suite.NoError(err)
	suite.Empty(trades)
}

func (suite *SimulatorTestSuite) TestLengthMismatchIsFatal() {
	series := barsFromCloses(1, 2, 3)

	_, err := Simulate(series, types.SignalSeries{true}, types.SignalSeries{false, false, false})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSignalLengthMismatch))

	_, err = Simulate(series, types.SignalSeries{false, false, false}, types.SignalSeries{})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSignalLengthMismatch))
}

func (suite *SimulatorTestSuite) TestProgressCallback() {
	series := barsFromCloses(1, 2, 3)
	none := types.SignalSeries{false, false, false}

	calls := 0
	_, err := SimulateWithProgress(series, none, none, func(current, total int) {
		calls++
		suite.Equal(3, total)
		suite.Equal(calls, current)
	})
	suite.NoError(err)
	suite.Equal(3, calls)
}
