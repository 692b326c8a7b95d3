package indicator

import (
	"sort"
	"sync"

	"github.com/helios-quant/rulebench/internal/types"
	"github.com/helios-quant/rulebench/pkg/errors"
)

// Registry manages all available indicators. The parser consults it to
// reject unknown names and wrong argument arity; the evaluator delegates
// indicator computation to it. A Registry is safe for concurrent readers,
// so one instance may serve independent backtests.
type Registry struct {
	specs map[string]Spec
	mu    sync.RWMutex
}

// NewRegistry creates an empty indicator registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]Spec),
	}
}

// NewDefaultRegistry creates a registry with SMA, EMA, RSI and PCT_CHANGE
// registered. The RSI smoothing variant is fixed per registry because it is
// a strategy-level policy, not a per-call argument.
func NewDefaultRegistry(smoothing RSISmoothing) (*Registry, error) {
	registry := NewRegistry()

	specs := []Spec{
		{
			Name:    NameSMA,
			MinArgs: 1,
			MaxArgs: 1,
			Compute: func(values []float64, args []float64) (types.ValueSeries, error) {
				p, err := period(NameSMA, args[0])
				if err != nil {
					return nil, err
				}

				return SMA(values, p)
			},
		},
		{
			Name:    NameEMA,
			MinArgs: 1,
			MaxArgs: 1,
			Compute: func(values []float64, args []float64) (types.ValueSeries, error) {
				p, err := period(NameEMA, args[0])
				if err != nil {
					return nil, err
				}

				return EMA(values, p)
			},
		},
		{
			Name:    NameRSI,
			MinArgs: 1,
			MaxArgs: 1,
			Compute: func(values []float64, args []float64) (types.ValueSeries, error) {
				p, err := period(NameRSI, args[0])
				if err != nil {
					return nil, err
				}

				return RSI(values, p, smoothing)
			},
		},
		{
			Name:    NamePctChange,
			MinArgs: 0,
			MaxArgs: 1,
			Compute: func(values []float64, args []float64) (types.ValueSeries, error) {
				p := 1
				if len(args) == 1 {
					var err error
					if p, err = period(NamePctChange, args[0]); err != nil {
						return nil, err
					}
				}

				return PctChange(values, p)
			},
		},
	}

	for _, spec := range specs {
		if err := registry.Register(spec); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Register adds an indicator to the registry.
func (r *Registry) Register(spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.Name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator %s already registered", spec.Name)
	}

	r.specs[spec.Name] = spec

	return nil
}

// Lookup retrieves an indicator spec by name.
func (r *Registry) Lookup(name string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.specs[name]
	if !exists {
		return Spec{}, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	return spec, nil
}

// List returns the names of all registered indicators, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
