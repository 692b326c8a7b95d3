package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// EMA computes the exponential moving average with the standard smoothing
// factor 2/(period+1). The average is seeded with the SMA of the first
// period values, so entries before index period-1 are undefined.
func EMA(values []float64, period int) (types.ValueSeries, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "EMA period must be a positive integer, got %d", period)
	}

	result := types.NewValueSeries(len(values))
	if len(values) < period {
		return result, nil
	}

	alpha := 2.0 / float64(period+1)

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}

	ema := seed / float64(period)
	result[period-1] = optional.Some(ema)

	for i := period; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		result[i] = optional.Some(ema)
	}

	return result, nil
}
