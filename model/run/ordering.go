package run

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/wsrun/model/workspace"
)

// ErrInvalidOrdering is returned for a malformed order-by-deps setting.
var ErrInvalidOrdering = errors.New("unexpected value for order-by-deps")

// Ordering controls whether the dependency graph gates execution.
type Ordering struct {
	Enabled bool
	// Types restricts considered categories; empty means all.
	Types []workspace.DependencyType
}

// Unordered ignores the dependency graph.
func Unordered() Ordering { return Ordering{} }

// ByDependencies orders by the supplied categories, or all when none are given.
func ByDependencies(types ...workspace.DependencyType) Ordering {
	return Ordering{Enabled: true, Types: types}
}

// DependencyTypes returns the categories used for graph building.
func (o Ordering) DependencyTypes() []workspace.DependencyType {
	if len(o.Types) == 0 {
		return workspace.DependencyTypes
	}
	return o.Types
}

func (o Ordering) String() string {
	if !o.Enabled {
		return "false"
	}
	if len(o.Types) == 0 {
		return "true"
	}
	names := make([]string, len(o.Types))
	for i, t := range o.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

// ParseOrdering normalises flag values: nothing or "false" disables
// ordering, "true" orders by every category, anything else is a list of
// categories (comma separated values are split).
func ParseOrdering(values ...string) (Ordering, error) {
	var items []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return Unordered(), nil
	}
	if len(items) == 1 {
		switch strings.ToLower(items[0]) {
		case "false":
			return Unordered(), nil
		case "true":
			return ByDependencies(), nil
		}
	}
	ret := Ordering{Enabled: true}
	for _, item := range items {
		depType, err := workspace.ParseDependencyType(item)
		if err != nil {
			return Ordering{}, fmt.Errorf("%w: %v", ErrInvalidOrdering, err)
		}
		ret.Types = append(ret.Types, depType)
	}
	return ret, nil
}
