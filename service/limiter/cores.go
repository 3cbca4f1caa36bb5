package limiter

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/viant/wsrun/model/run"
)

// CountCores reports physical cores; replaced in tests.
var CountCores = func() (int, error) { return cpu.Counts(false) }

var physicalCores = sync.OnceValue(func() int {
	if n, err := CountCores(); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
})

// PhysicalCores returns the number of physical cores detected on first use,
// falling back to logical CPUs when detection is not supported.
func PhysicalCores() int {
	return physicalCores()
}

// LimitOf maps a parallelism setting onto a limiter bound (0 = unbounded).
func LimitOf(p run.Parallelism) int {
	switch p.Mode {
	case run.Unbounded:
		return 0
	case run.Fixed:
		if p.Limit < 1 {
			return 1
		}
		return p.Limit
	case run.PhysicalCores:
		return PhysicalCores()
	default:
		return 1
	}
}

// NewFor creates a limiter bounded according to p.
func NewFor(p run.Parallelism) *Limiter {
	return New(LimitOf(p))
}
