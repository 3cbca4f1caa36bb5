package workspace

import (
	"fmt"
	"strings"
)

// DependencyType names a manifest dependency category.
type DependencyType string

const (
	Dependencies         DependencyType = "dependencies"
	DevDependencies      DependencyType = "devDependencies"
	PeerDependencies     DependencyType = "peerDependencies"
	OptionalDependencies DependencyType = "optionalDependencies"
)

// DependencyTypes lists every category in manifest order.
var DependencyTypes = []DependencyType{
	Dependencies,
	DevDependencies,
	PeerDependencies,
	OptionalDependencies,
}

// ErrUnknownDependencyType is returned for a category outside DependencyTypes.
var ErrUnknownDependencyType = fmt.Errorf("unknown dependency type")

// ParseDependencyType validates name against the known categories.
func ParseDependencyType(name string) (DependencyType, error) {
	name = strings.TrimSpace(name)
	for _, candidate := range DependencyTypes {
		if string(candidate) == name {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDependencyType, name)
}
