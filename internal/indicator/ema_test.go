package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/helios-quant/rulebench/pkg/errors"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestEMAValues() {
	// period 3: alpha = 0.5, seeded with SMA(1,2,3) = 2.
	result, err := EMA([]float64{1, 2, 3, 4, 5}, 3)
	suite.NoError(err)
	suite.Len(result, 5)

	suite.True(result[0].IsNone())
	suite.True(result[1].IsNone())
	suite.InDelta(2.0, result[2].Unwrap(), 1e-9)
	suite.InDelta(3.0, result[3].Unwrap(), 1e-9)
	suite.InDelta(4.0, result[4].Unwrap(), 1e-9)
}

func (suite *EMATestSuite) TestEMATracksConstantSeries() {
	result, err := EMA([]float64{7, 7, 7, 7, 7, 7}, 4)
	suite.NoError(err)

	for i := 3; i < 6; i++ {
		suite.InDelta(7.0, result[i].Unwrap(), 1e-9)
	}
}

func (suite *EMATestSuite) TestEMAShortSeries() {
	result, err := EMA([]float64{1, 2, 3}, 10)
	suite.NoError(err)
	suite.Len(result, 3)
	suite.Equal(3, result.DefinedFrom())
}

func (suite *EMATestSuite) TestEMAInvalidPeriod() {
	_, err := EMA([]float64{1, 2, 3}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
