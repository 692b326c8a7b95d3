// Package datasource loads historical price bars for the backtest engine.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/helios-quant/rulebench/internal/types"
)

// DataSource provides ordered historical bars. Implementations must return
// bars sorted by timestamp ascending; the optional bounds are inclusive.
type DataSource interface {
	// Initialize loads market data from the given path.
	Initialize(path string) error
	// ReadAll returns every bar inside the optional time window, ordered
	// by timestamp.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.Bar, error)
	// Count returns the number of bars inside the optional time window.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases any underlying resources.
	Close() error
}
