package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// PctChange computes (v[i] - v[i-period]) / v[i-period]. Entries are
// undefined for the first period bars and wherever the denominator is zero.
func PctChange(values []float64, period int) (types.ValueSeries, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "PCT_CHANGE period must be a positive integer, got %d", period)
	}

	result := types.NewValueSeries(len(values))

	for i := period; i < len(values); i++ {
		base := values[i-period]
		if base == 0 {
			continue
		}

		result[i] = optional.Some((values[i] - base) / base)
	}

	return result, nil
}
