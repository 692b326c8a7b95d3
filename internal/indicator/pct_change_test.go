package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/helios-quant/rulebench/pkg/errors"
)

type PctChangeTestSuite struct {
	suite.Suite
}

func TestPctChangeSuite(t *testing.T) {
	suite.Run(t, new(PctChangeTestSuite))
}

func (suite *PctChangeTestSuite) TestPctChangeDefaultPeriod() {
	result, err := PctChange([]float64{100, 110, 99}, 1)
	suite.NoError(err)
	suite.Len(result, 3)

	suite.True(result[0].IsNone())
	suite.InDelta(0.10, result[1].Unwrap(), 1e-9)
	suite.InDelta(-0.10, result[2].Unwrap(), 1e-9)
}

func (suite *PctChangeTestSuite) TestPctChangeLongerPeriod() {
	result, err := PctChange([]float64{100, 105, 120, 90}, 2)
	suite.NoError(err)

	suite.True(result[0].IsNone())
	suite.True(result[1].IsNone())
	suite.InDelta(0.20, result[2].Unwrap(), 1e-9)
	suite.InDelta(-1.0/7.0, result[3].Unwrap(), 1e-9)
}

func (suite *PctChangeTestSuite) TestPctChangeZeroDenominator() {
	result, err := PctChange([]float64{0, 10, 20}, 1)
	suite.NoError(err)

	// change from a zero base is undefined, not an error
	suite.True(result[1].IsNone())
	suite.InDelta(1.0, result[2].Unwrap(), 1e-9)
}

func (suite *PctChangeTestSuite) TestPctChangeInvalidPeriod() {
	_, err := PctChange([]float64{1, 2}, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
