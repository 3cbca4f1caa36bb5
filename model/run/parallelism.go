package run

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how many workspace tasks may run at once.
type Mode int

const (
	// Off runs one task at a time.
	Off Mode = iota
	// Unbounded admits every task immediately.
	Unbounded
	// Fixed admits at most Parallelism.Limit tasks.
	Fixed
	// PhysicalCores admits as many tasks as there are physical cores.
	PhysicalCores
)

// PhysicalCoresValue is the flag value selecting PhysicalCores.
const PhysicalCoresValue = "physical-cores"

// ErrInvalidParallelism is returned for a malformed parallel setting.
var ErrInvalidParallelism = errors.New("unexpected value for parallel")

// Parallelism is the closed representation of the parallel setting.
type Parallelism struct {
	Mode  Mode
	Limit int
}

// Enabled reports whether tasks may overlap.
func (p Parallelism) Enabled() bool {
	return p.Mode != Off
}

func (p Parallelism) String() string {
	switch p.Mode {
	case Unbounded:
		return "true"
	case Fixed:
		return strconv.Itoa(p.Limit)
	case PhysicalCores:
		return PhysicalCoresValue
	default:
		return "false"
	}
}

// Serial returns the Off parallelism.
func Serial() Parallelism { return Parallelism{Mode: Off} }

// Limited returns a Fixed parallelism of n.
func Limited(n int) Parallelism { return Parallelism{Mode: Fixed, Limit: n} }

// ParseParallelism normalises "", "false", "true", "physical-cores" or a
// positive integer.
func ParseParallelism(value string) (Parallelism, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "false":
		return Serial(), nil
	case "true":
		return Parallelism{Mode: Unbounded}, nil
	case PhysicalCoresValue:
		return Parallelism{Mode: PhysicalCores}, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return Parallelism{}, fmt.Errorf("%w: %q", ErrInvalidParallelism, value)
	}
	return Limited(n), nil
}
