package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/helios-quant/rulebench/internal/backtest"
	"github.com/helios-quant/rulebench/internal/datasource"
	"github.com/helios-quant/rulebench/internal/logger"
	"github.com/helios-quant/rulebench/internal/types"
)

// backtestAction loads the config and price data, runs one backtest, and
// writes the result YAML into the output directory.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataPath := cmd.String("data")
	outputDir := cmd.String("output")

	configYAML, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	engine := backtest.NewEngine()
	if err := engine.Initialize(string(configYAML)); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	source, err := datasource.NewDuckDB(logger)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return fmt.Errorf("failed to load data from %s: %w", dataPath, err)
	}

	engine.SetDataSource(source)
	engine.SetShowProgress(!cmd.Bool("quiet"))

	result, err := engine.Run()
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resultPath := filepath.Join(outputDir, fmt.Sprintf("%s.yaml", result.ID))
	if err := types.WriteResult(resultPath, *result); err != nil {
		return err
	}

	log.Printf("Result written to %s (%d trades, total return %.2f%%)",
		resultPath, result.TradeCount, result.TotalReturn)

	return nil
}

// schemaAction prints the JSON schema of the backtest config to stdout.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := backtest.EmptyConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schemaJSON)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "rulebench",
		Usage: "Backtest entry/exit rules over historical price data",
		Commands: []*cli.Command{
			{
				Name:  "backtest",
				Usage: "Run a backtest described by a YAML config over a CSV or Parquet file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the backtest YAML config",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the price data file (.csv or .parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for the result YAML",
						Value:   "results",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Disable the progress bar",
					},
				},
				Action: backtestAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the backtest config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
