package types

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestNewTradeReturnPct() {
	entryTime := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
	exitTime := time.Date(2024, 1, 1, 0, 3, 0, 0, time.UTC)
	pos := Position{EntryIndex: 1, EntryTime: entryTime, EntryPrice: 101}

	trade := NewTrade(pos, 3, exitTime, 94, false)
	suite.Equal(1, trade.EntryIndex)
	suite.Equal(3, trade.ExitIndex)
	suite.Equal(101.0, trade.EntryPrice)
	suite.Equal(94.0, trade.ExitPrice)
	suite.InDelta(-6.93, trade.ReturnPct, 0.01)
	suite.False(trade.ForceClosed)
	suite.False(trade.IsWin())
}

func (suite *TradeTestSuite) TestNewTradeWin() {
	pos := Position{EntryIndex: 0, EntryPrice: 100}
	trade := NewTrade(pos, 2, time.Time{}, 110, false)
	suite.InDelta(10.0, trade.ReturnPct, 1e-9)
	suite.True(trade.IsWin())
}

func (suite *TradeTestSuite) TestNewTradeForceClosed() {
	pos := Position{EntryIndex: 4, EntryPrice: 100}
	trade := NewTrade(pos, 5, time.Time{}, 100, true)
	suite.True(trade.ForceClosed)
	suite.InDelta(0.0, trade.ReturnPct, 1e-9)
	suite.False(trade.IsWin())
}

func (suite *TradeTestSuite) TestValueSeriesDefinedFrom() {
	values := NewValueSeries(4)
	suite.Equal(4, values.DefinedFrom())

	values[2] = optional.Some(1.5)
	values[3] = optional.Some(2.5)
	suite.Equal(2, values.DefinedFrom())
}

func (suite *TradeTestSuite) TestSignalSeriesCount() {
	signals := SignalSeries{false, true, false, true, true}
	suite.Equal(3, signals.Count())
	suite.Equal(0, SignalSeries{}.Count())
}
