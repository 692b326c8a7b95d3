package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// RSI computes the relative strength index over the trailing period price
// changes. The smoothing variant is an explicit parameter: Wilder's
// recursive smoothing or a simple moving average of gains and losses.
// Values are in [0,100]; entries before index period are undefined because
// period+1 prices are needed for period changes.
func RSI(values []float64, period int, smoothing RSISmoothing) (types.ValueSeries, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "RSI period must be a positive integer, got %d", period)
	}

	switch smoothing {
	case RSISmoothingWilder, RSISmoothingSimple:
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown RSI smoothing %q", smoothing)
	}

	result := types.NewValueSeries(len(values))
	if len(values) <= period {
		return result, nil
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	if smoothing == RSISmoothingSimple {
		for i := period; i < len(values); i++ {
			avgGain, avgLoss := 0.0, 0.0
			for j := i - period + 1; j <= i; j++ {
				avgGain += gains[j]
				avgLoss += losses[j]
			}

			result[i] = optional.Some(rsiFromAverages(avgGain/float64(period), avgLoss/float64(period)))
		}

		return result, nil
	}

	// Wilder: seed with the simple average of the first period changes,
	// then smooth recursively.
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	result[period] = optional.Some(rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(values); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		result[i] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return result, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
