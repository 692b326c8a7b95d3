package types

import "github.com/moznion/go-optional"

// ValueSeries is a per-bar numeric series aligned 1:1 with a price Series.
// A None entry marks a bar where the value is undefined (indicator warm-up,
// lookback beyond the start of history, division by zero). Undefined entries
// are an explicit contract, not NaN propagation: comparisons over them
// evaluate to false.
type ValueSeries []optional.Option[float64]

// NewValueSeries returns an all-undefined series of the given length.
func NewValueSeries(length int) ValueSeries {
	return make(ValueSeries, length)
}

// DefinedFrom reports the first index with a defined value, or the series
// length when every entry is undefined.
func (v ValueSeries) DefinedFrom() int {
	for i, entry := range v {
		if entry.IsSome() {
			return i
		}
	}

	return len(v)
}

// SignalSeries is a per-bar boolean series aligned 1:1 with a price Series.
// Bars with insufficient data are false, never an error.
type SignalSeries []bool

// Count returns the number of true entries.
func (s SignalSeries) Count() int {
	count := 0

	for _, fired := range s {
		if fired {
			count++
		}
	}

	return count
}
