package types

import (
	"math"
	"time"

	"github.com/helios-quant/rulebench/pkg/errors"
)

// Field identifies one column of a price bar.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// ParseField converts a lowercase field name into a Field.
func ParseField(name string) (Field, bool) {
	switch Field(name) {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return Field(name), true
	default:
		return "", false
	}
}

// Bar is a single time step of price/volume data.
type Bar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Field returns the named column of the bar.
func (b Bar) Field(f Field) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldClose:
		return b.Close
	case FieldVolume:
		return b.Volume
	default:
		return 0
	}
}

// Series is a price history strictly ordered by timestamp. Lookback
// operations are defined in bar counts, not calendar time.
type Series []Bar

// Column extracts one field of every bar as a flat slice.
func (s Series) Column(f Field) []float64 {
	values := make([]float64, len(s))
	for i, bar := range s {
		values[i] = bar.Field(f)
	}

	return values
}

// Closes is shorthand for Column(FieldClose).
func (s Series) Closes() []float64 {
	return s.Column(FieldClose)
}

// Validate checks the series invariants: strictly increasing timestamps,
// finite price fields and non-negative volume.
func (s Series) Validate() error {
	for i, bar := range s {
		if i > 0 && !bar.Time.After(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidSeries,
				"bar %d timestamp %s is not after bar %d timestamp %s",
				i, bar.Time.Format(time.RFC3339), i-1, s[i-1].Time.Format(time.RFC3339))
		}

		for _, v := range []float64{bar.Open, bar.High, bar.Low, bar.Close, bar.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Newf(errors.ErrCodeInvalidSeries, "bar %d contains a non-finite value", i)
			}
		}

		if bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeInvalidSeries, "bar %d has negative volume %f", i, bar.Volume)
		}
	}

	return nil
}
