// Package backtest runs the full pipeline: compile the entry and exit rules,
// evaluate them over the loaded price history, and simulate the resulting
// signals into a trade log with aggregate metrics.
package backtest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/helios-quant/rulebench/internal/datasource"
	"github.com/helios-quant/rulebench/internal/dsl"
	"github.com/helios-quant/rulebench/internal/eval"
	"github.com/helios-quant/rulebench/internal/indicator"
	"github.com/helios-quant/rulebench/internal/logger"
	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Engine wires the pipeline stages together. One full run is a synchronous
// call chain: parse, evaluate, simulate. The engine holds no mutable state
// across runs beyond its configuration, so independent engines may run
// concurrently.
type Engine struct {
	config       Config
	log          *logger.Logger
	registry     *indicator.Registry
	evaluator    *eval.Evaluator
	datasource   datasource.DataSource
	showProgress bool
}

// NewEngine creates an uninitialized engine. Initialize must be called with
// a YAML config before Run.
func NewEngine() *Engine {
	return &Engine{
		config:       EmptyConfig(),
		log:          nil,
		registry:     nil,
		evaluator:    nil,
		datasource:   nil,
		showProgress: false,
	}
}

// Initialize parses and validates the YAML config and prepares the
// indicator registry and evaluator.
func (e *Engine) Initialize(configYAML string) error {
	if err := yaml.Unmarshal([]byte(configYAML), &e.config); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := e.config.Validate(); err != nil {
		return err
	}

	var loggerErr error

	e.log, loggerErr = logger.NewLogger()
	if loggerErr != nil {
		return loggerErr
	}

	registry, err := indicator.NewDefaultRegistry(e.config.RSISmoothing)
	if err != nil {
		return err
	}

	e.registry = registry
	e.evaluator = eval.New(registry)

	e.log.Debug("Backtest engine initialized",
		zap.String("strategy", e.config.StrategyName),
		zap.String("total_return_mode", string(e.config.TotalReturnMode)),
		zap.String("rsi_smoothing", string(e.config.RSISmoothing)),
	)

	return nil
}

// SetDataSource sets the bar source for the next run.
func (e *Engine) SetDataSource(ds datasource.DataSource) {
	e.datasource = ds
}

// SetShowProgress toggles the terminal progress bar during simulation.
func (e *Engine) SetShowProgress(show bool) {
	e.showProgress = show
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run executes one complete backtest and returns its result. Rule
// compilation errors are fatal and reported with their source position;
// they never reach the simulator. Missing data during evaluation only
// increments the result's diagnostic counter.
func (e *Engine) Run() (*types.Result, error) {
	if e.registry == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "engine not initialized")
	}

	if e.datasource == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoDatasource, "no data source configured")
	}

	entryNode, err := dsl.Parse(e.config.EntryRule, e.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to compile entry rule: %w", err)
	}

	exitNode, err := dsl.Parse(e.config.ExitRule, e.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to compile exit rule: %w", err)
	}

	bars, err := e.datasource.ReadAll(e.config.StartTime, e.config.EndTime)
	if err != nil {
		return nil, err
	}

	series := types.Series(bars)
	if err := series.Validate(); err != nil {
		return nil, err
	}

	e.log.Info("Evaluating rules",
		zap.Int("bars", len(series)),
		zap.String("entry_rule", e.config.EntryRule),
		zap.String("exit_rule", e.config.ExitRule),
	)

	entrySignals, entryDiag, err := e.evaluator.Evaluate(entryNode, series)
	if err != nil {
		return nil, err
	}

	exitSignals, exitDiag, err := e.evaluator.Evaluate(exitNode, series)
	if err != nil {
		return nil, err
	}

	var onProgress ProgressFunc

	if e.showProgress {
		bar := progressbar.Default(int64(len(series)))
		bar.Describe(fmt.Sprintf("Simulating %s", e.config.StrategyName))
		onProgress = func(current, total int) {
			_ = bar.Add(1)
		}
	}

	trades, err := SimulateWithProgress(series, entrySignals, exitSignals, onProgress)
	if err != nil {
		return nil, err
	}

	result, err := ComputeResult(trades, e.config.TotalReturnMode)
	if err != nil {
		return nil, err
	}

	result.ID = uuid.NewString()
	result.Timestamp = time.Now()
	result.Strategy = e.config.StrategyName
	result.EntryRule = e.config.EntryRule
	result.ExitRule = e.config.ExitRule
	result.UndefinedBars = entryDiag.UndefinedBars + exitDiag.UndefinedBars

	e.log.Info("Backtest complete",
		zap.String("id", result.ID),
		zap.Int("trades", result.TradeCount),
		zap.Float64("total_return", result.TotalReturn),
		zap.Float64("win_rate", result.WinRate),
		zap.Float64("max_drawdown", result.MaxDrawdown),
		zap.Int("undefined_bars", result.UndefinedBars),
	)

	return &result, nil
}
