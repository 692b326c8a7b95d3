package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
)

// InMemoryDataSource serves bars from a slice. It backs tests and library
// callers that already hold a loaded series.
type InMemoryDataSource struct {
	bars []types.Bar
}

// NewInMemory creates a data source over the given bars. The caller is
// responsible for passing bars in timestamp order.
func NewInMemory(bars []types.Bar) *InMemoryDataSource {
	return &InMemoryDataSource{bars: bars}
}

// Initialize implements DataSource. It is a no-op: the bars are supplied at
// construction time.
func (m *InMemoryDataSource) Initialize(_ string) error {
	return nil
}

// ReadAll implements DataSource.
func (m *InMemoryDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error) {
	var bars []types.Bar

	for _, bar := range m.bars {
		if inBounds(bar.Time, start, end) {
			bars = append(bars, bar)
		}
	}

	return bars, nil
}

// Count implements DataSource.
func (m *InMemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	count := 0

	for _, bar := range m.bars {
		if inBounds(bar.Time, start, end) {
			count++
		}
	}

	return count, nil
}

// Close implements DataSource.
func (m *InMemoryDataSource) Close() error {
	return nil
}

func inBounds(t time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && t.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && t.After(end.Unwrap()) {
		return false
	}

	return true
}
