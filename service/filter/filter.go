package filter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/wsrun/model/workspace"
)

// ErrInvalidPattern is returned for a malformed glob pattern.
var ErrInvalidPattern = errors.New("invalid pattern")

// Patterns selects workspaces. An empty include list includes everything,
// an empty exclude list excludes nothing; excludes win.
type Patterns struct {
	Only     []string `json:"only,omitempty" yaml:"only,omitempty"`
	Ignore   []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	OnlyFs   []string `json:"onlyFs,omitempty" yaml:"onlyFs,omitempty"`
	IgnoreFs []string `json:"ignoreFs,omitempty" yaml:"ignoreFs,omitempty"`
}

// IsEmpty reports whether no pattern is set.
func (p *Patterns) IsEmpty() bool {
	return p == nil || len(p.Only)+len(p.Ignore)+len(p.OnlyFs)+len(p.IgnoreFs) == 0
}

// Validate checks every pattern.
func (p *Patterns) Validate() error {
	if p == nil {
		return nil
	}
	for _, group := range [][]string{p.Only, p.Ignore, p.OnlyFs, p.IgnoreFs} {
		for _, pattern := range group {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
			}
		}
	}
	return nil
}

// IsAllowed evaluates name against Only/Ignore and relativeDir against OnlyFs/IgnoreFs.
func (p *Patterns) IsAllowed(name, relativeDir string) bool {
	if p == nil {
		return true
	}
	if !matchesAny(name, p.Only, true) || matchesAny(name, p.Ignore, false) {
		return false
	}
	relativeDir = filepath.ToSlash(relativeDir)
	if !matchesAny(relativeDir, p.OnlyFs, true) || matchesAny(relativeDir, p.IgnoreFs, false) {
		return false
	}
	return true
}

// Apply returns the workspaces of set allowed by the patterns, re-indexed in set order.
func (p *Patterns) Apply(set *workspace.Set) (*workspace.Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return set, nil
	}
	return set.Filter(func(ws *workspace.Workspace) bool {
		return p.IsAllowed(ws.Name, relative(set.Root, ws.Dir))
	}), nil
}

func relative(root, dir string) string {
	if root == "" {
		return dir
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return rel
}

func matchesAny(value string, patterns []string, emptyMatches bool) bool {
	if len(patterns) == 0 {
		return emptyMatches
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, value); ok {
			return true
		}
	}
	return false
}
