package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/helios-quant/rulebench/internal/logger"
)

type DuckDBTestSuite struct {
	suite.Suite
	ds      *DuckDBDataSource
	csvPath string
}

func TestDuckDBSuite(t *testing.T) {
	suite.Run(t, new(DuckDBTestSuite))
}

func (suite *DuckDBTestSuite) SetupTest() {
	log, err := logger.NewLogger()
	suite.Require().NoError(err)

	ds, err := NewDuckDB(log)
	suite.Require().NoError(err)
	suite.ds = ds

	csv := `time,open,high,low,close,volume
2024-01-01 00:00:00,100,102,99,101,1000
2024-01-01 01:00:00,101,103,100,102,1100
2024-01-01 02:00:00,102,104,93,94,1200
2024-01-01 03:00:00,94,100,93,99,1300
`
	suite.csvPath = filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(csv), 0644))
}

func (suite *DuckDBTestSuite) TearDownTest() {
	suite.NoError(suite.ds.Close())
}

func (suite *DuckDBTestSuite) TestInitializeAndReadAll() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	bars, err := suite.ds.ReadAll(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Require().Len(bars, 4)

	suite.Equal(101.0, bars[0].Close)
	suite.Equal(94.0, bars[2].Close)
	suite.True(bars[0].Time.Before(bars[1].Time))
}

func (suite *DuckDBTestSuite) TestReadAllWithTimeWindow() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	start := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)

	bars, err := suite.ds.ReadAll(optional.Some(start), optional.Some(end))
	suite.NoError(err)
	suite.Len(bars, 2)
}

func (suite *DuckDBTestSuite) TestCount() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	count, err := suite.ds.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(4, count)
}

func (suite *DuckDBTestSuite) TestInitializeMissingFile() {
	err := suite.ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Error(err)
}

func (suite *DuckDBTestSuite) TestImplementsDataSource() {
	var _ DataSource = suite.ds
}
