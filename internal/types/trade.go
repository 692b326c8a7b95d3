package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the ephemeral state of an open long position. At most one
// Position exists at any point of a simulation.
type Position struct {
	EntryIndex int
	EntryTime  time.Time
	EntryPrice float64
}

// Trade is one completed round trip, appended to the trade log when a
// position closes. Trades in a log are chronological and non-overlapping.
type Trade struct {
	EntryIndex int       `yaml:"entry_index" csv:"entry_index"`
	EntryTime  time.Time `yaml:"entry_time" csv:"entry_time"`
	EntryPrice float64   `yaml:"entry_price" csv:"entry_price"`
	ExitIndex  int       `yaml:"exit_index" csv:"exit_index"`
	ExitTime   time.Time `yaml:"exit_time" csv:"exit_time"`
	ExitPrice  float64   `yaml:"exit_price" csv:"exit_price"`
	// ReturnPct is the close-to-close percentage return of the trade.
	ReturnPct float64 `yaml:"return_pct" csv:"return_pct"`
	// ForceClosed marks a trade closed by the end-of-data policy rather
	// than an exit signal.
	ForceClosed bool `yaml:"force_closed" csv:"force_closed"`
}

// NewTrade closes the given position at the given bar and computes the
// percentage return: (exit - entry) / entry * 100.
func NewTrade(pos Position, exitIndex int, exitTime time.Time, exitPrice float64, forceClosed bool) Trade {
	entryDec := decimal.NewFromFloat(pos.EntryPrice)
	exitDec := decimal.NewFromFloat(exitPrice)
	returnPct, _ := exitDec.Sub(entryDec).Div(entryDec).Mul(decimal.NewFromInt(100)).Float64()

	return Trade{
		EntryIndex:  pos.EntryIndex,
		EntryTime:   pos.EntryTime,
		EntryPrice:  pos.EntryPrice,
		ExitIndex:   exitIndex,
		ExitTime:    exitTime,
		ExitPrice:   exitPrice,
		ReturnPct:   returnPct,
		ForceClosed: forceClosed,
	}
}

// IsWin reports whether the trade closed with a positive return.
func (t Trade) IsWin() bool {
	return t.ReturnPct > 0
}
