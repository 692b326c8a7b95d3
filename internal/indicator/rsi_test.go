package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/helios-quant/rulebench/pkg/errors"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestRSIWarmupRegion() {
	result, err := RSI([]float64{1, 2, 3, 4, 5, 6}, 3, RSISmoothingWilder)
	suite.NoError(err)
	suite.Len(result, 6)

	// period+1 prices are needed for period changes.
	suite.Equal(3, result.DefinedFrom())
}

func (suite *RSITestSuite) TestRSIAllGains() {
	result, err := RSI([]float64{1, 2, 3, 4, 5}, 2, RSISmoothingWilder)
	suite.NoError(err)

	for i := 2; i < 5; i++ {
		suite.InDelta(100.0, result[i].Unwrap(), 1e-9)
	}
}

func (suite *RSITestSuite) TestRSIAllLosses() {
	result, err := RSI([]float64{5, 4, 3, 2, 1}, 2, RSISmoothingSimple)
	suite.NoError(err)

	for i := 2; i < 5; i++ {
		suite.InDelta(0.0, result[i].Unwrap(), 1e-9)
	}
}

func (suite *RSITestSuite) TestRSIWilderValues() {
	// changes: +1, +1, -1, +2
	result, err := RSI([]float64{1, 2, 3, 2, 4}, 2, RSISmoothingWilder)
	suite.NoError(err)

	suite.InDelta(100.0, result[2].Unwrap(), 1e-9)
	suite.InDelta(50.0, result[3].Unwrap(), 1e-9)
	// avgGain = (0.5 + 2) / 2 = 1.25, avgLoss = 0.5 / 2 = 0.25
	suite.InDelta(100.0-100.0/6.0, result[4].Unwrap(), 1e-9)
}

func (suite *RSITestSuite) TestRSISimpleValues() {
	// changes: +1, +1, -1, +2
	result, err := RSI([]float64{1, 2, 3, 2, 4}, 2, RSISmoothingSimple)
	suite.NoError(err)

	suite.InDelta(100.0, result[2].Unwrap(), 1e-9)
	suite.InDelta(50.0, result[3].Unwrap(), 1e-9)
	// trailing window gains avg 1.0, losses avg 0.5
	suite.InDelta(100.0-100.0/3.0, result[4].Unwrap(), 1e-9)
}

func (suite *RSITestSuite) TestRSIDomain() {
	values := []float64{10, 12, 11, 13, 9, 14, 12, 15, 11, 16}

	for _, smoothing := range []RSISmoothing{RSISmoothingWilder, RSISmoothingSimple} {
		result, err := RSI(values, 3, smoothing)
		suite.NoError(err)

		for i := 3; i < len(values); i++ {
			v := result[i].Unwrap()
			suite.GreaterOrEqual(v, 0.0)
			suite.LessOrEqual(v, 100.0)
		}
	}
}

func (suite *RSITestSuite) TestRSIInvalidPeriod() {
	_, err := RSI([]float64{1, 2, 3}, 0, RSISmoothingWilder)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *RSITestSuite) TestRSIUnknownSmoothing() {
	_, err := RSI([]float64{1, 2, 3}, 2, RSISmoothing("hull"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *RSITestSuite) TestRSIShortSeries() {
	result, err := RSI([]float64{1, 2, 3}, 5, RSISmoothingWilder)
	suite.NoError(err)
	suite.Equal(3, result.DefinedFrom())
}
