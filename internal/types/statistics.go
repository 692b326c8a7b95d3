package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is the aggregate outcome of one backtest run.
type Result struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Strategy is the human-readable name from the strategy config.
	Strategy string `yaml:"strategy" json:"strategy"`
	// EntryRule and ExitRule are the rule texts the run was compiled from.
	EntryRule string `yaml:"entry_rule" json:"entry_rule"`
	ExitRule  string `yaml:"exit_rule" json:"exit_rule"`
	// TotalReturn is the aggregate percentage return across all trades,
	// summed or compounded depending on the configured mode.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// WinRate is the share of trades with positive return, in [0,100].
	// 0 when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// AverageReturn is the mean per-trade percentage return. Reported as 0
	// when there are no trades.
	AverageReturn float64 `yaml:"average_return" json:"average_return"`
	// MaxDrawdown is the largest peak-to-trough decline of the cumulative
	// return curve, always >= 0.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// TradeCount is the number of completed trades.
	TradeCount int `yaml:"trade_count" json:"trade_count"`
	// Trades is the chronological trade log.
	Trades []Trade `yaml:"trades" json:"trades"`
	// UndefinedBars counts comparison evaluations that degraded to false
	// because of undefined operand data. Diagnostic only, never fatal.
	UndefinedBars int `yaml:"undefined_bars" json:"undefined_bars"`
}

// WriteResult marshals the result to YAML and writes it to path.
func WriteResult(path string, result Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result to file: %w", err)
	}

	return nil
}
