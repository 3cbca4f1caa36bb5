package run

import "fmt"

// Options is the closed, validated set of run settings.
type Options struct {
	Parallel        Parallelism
	Ordering        Ordering
	ContinueOnError bool
}

// Strategy names one of the four execution strategies.
type Strategy string

const (
	StrategySerial        Strategy = "serial"
	StrategySerialGraph   Strategy = "serial-graph"
	StrategyParallel      Strategy = "parallel"
	StrategyParallelGraph Strategy = "parallel-graph"
)

// Strategy returns the execution strategy selected by the options.
func (o *Options) Strategy() Strategy {
	switch {
	case o.Parallel.Enabled() && o.Ordering.Enabled:
		return StrategyParallelGraph
	case o.Parallel.Enabled():
		return StrategyParallel
	case o.Ordering.Enabled:
		return StrategySerialGraph
	default:
		return StrategySerial
	}
}

// Validate checks option consistency.
func (o *Options) Validate() error {
	if o.Parallel.Mode == Fixed && o.Parallel.Limit < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidParallelism, o.Parallel.Limit)
	}
	return nil
}
