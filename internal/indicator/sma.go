package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// SMA computes the simple moving average of the trailing period values.
// Entries before index period-1 are undefined.
func SMA(values []float64, period int) (types.ValueSeries, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "SMA period must be a positive integer, got %d", period)
	}

	result := types.NewValueSeries(len(values))
	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			result[i] = optional.Some(sum / float64(period))
		}
	}

	return result, nil
}
