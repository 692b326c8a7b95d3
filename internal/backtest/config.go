package backtest

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/indicator"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// TotalReturnMode selects how per-trade returns aggregate into the total.
type TotalReturnMode string

const (
	// TotalReturnSum adds per-trade percentage returns, the
	// fixed-position-size model.
	TotalReturnSum TotalReturnMode = "sum"
	// TotalReturnCompound multiplies per-trade growth factors.
	TotalReturnCompound TotalReturnMode = "compound"
)

// Config describes one backtest run. Aggregation and smoothing variants are
// explicit configuration, not hidden defaults.
type Config struct {
	StrategyName    string                     `yaml:"strategy_name" json:"strategy_name" jsonschema:"title=Strategy Name,description=Human-readable label for the run"`
	EntryRule       string                     `yaml:"entry_rule" json:"entry_rule" jsonschema:"title=Entry Rule,description=Rule text that opens a position" validate:"required"`
	ExitRule        string                     `yaml:"exit_rule" json:"exit_rule" jsonschema:"title=Exit Rule,description=Rule text that closes a position" validate:"required"`
	TotalReturnMode TotalReturnMode            `yaml:"total_return_mode" json:"total_return_mode" jsonschema:"title=Total Return Mode,description=How per-trade returns aggregate" validate:"oneof=sum compound"`
	RSISmoothing    indicator.RSISmoothing     `yaml:"rsi_smoothing" json:"rsi_smoothing" jsonschema:"title=RSI Smoothing,description=Average gain/loss smoothing variant" validate:"oneof=wilder simple"`
	StartTime       optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the backtest window"`
	EndTime         optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the backtest window"`
}

// UnmarshalYAML implements custom unmarshaling for Config.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plainConfig struct {
		StrategyName    string                 `yaml:"strategy_name"`
		EntryRule       string                 `yaml:"entry_rule"`
		ExitRule        string                 `yaml:"exit_rule"`
		TotalReturnMode TotalReturnMode        `yaml:"total_return_mode"`
		RSISmoothing    indicator.RSISmoothing `yaml:"rsi_smoothing"`
		StartTime       *time.Time             `yaml:"start_time"`
		EndTime         *time.Time             `yaml:"end_time"`
	}

	var plain plainConfig
	if err := unmarshal(&plain); err != nil {
		return err
	}

	c.StrategyName = plain.StrategyName
	c.EntryRule = plain.EntryRule
	c.ExitRule = plain.ExitRule
	c.TotalReturnMode = plain.TotalReturnMode
	c.RSISmoothing = plain.RSISmoothing

	if plain.StartTime != nil {
		c.StartTime = optional.Some(*plain.StartTime)
	}

	if plain.EndTime != nil {
		c.EndTime = optional.Some(*plain.EndTime)
	}

	return nil
}

// setDefaults fills the policy fields left empty in the YAML.
func (c *Config) setDefaults() {
	if c.TotalReturnMode == "" {
		c.TotalReturnMode = TotalReturnSum
	}

	if c.RSISmoothing == "" {
		c.RSISmoothing = indicator.RSISmoothingWilder
	}
}

// Validate applies defaults and checks the config invariants.
func (c *Config) Validate() error {
	c.setDefaults()

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest configuration", err)
	}

	return nil
}

// EmptyConfig returns a Config with default values.
func EmptyConfig() Config {
	return Config{
		StrategyName:    "",
		EntryRule:       "",
		ExitRule:        "",
		TotalReturnMode: TotalReturnSum,
		RSISmoothing:    indicator.RSISmoothingWilder,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
	}
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "rulebench-config"
	schema.Description = "Configuration schema for a rulebench backtest run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates an indented JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
