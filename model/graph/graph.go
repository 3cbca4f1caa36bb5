package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/viant/wsrun/model/workspace"
)

// ErrCycle is returned when the dependency graph is not acyclic.
var ErrCycle = errors.New("dependency cycle detected")

// Satisfier decides whether a declared requirement of from is met by candidate.
type Satisfier interface {
	Satisfies(from, candidate *workspace.Workspace, requirement, root string) bool
}

// SatisfierFunc adapts a function to Satisfier.
type SatisfierFunc func(from, candidate *workspace.Workspace, requirement, root string) bool

// Satisfies implements Satisfier.
func (f SatisfierFunc) Satisfies(from, candidate *workspace.Workspace, requirement, root string) bool {
	return f(from, candidate, requirement, root)
}

// Graph maps every workspace handle to the handles it directly depends on.
type Graph struct {
	set        *workspace.Set
	deps       [][]workspace.ID
	dependents [][]workspace.ID
}

// New creates a graph with no edges over set.
func New(set *workspace.Set) *Graph {
	n := set.Len()
	return &Graph{
		set:        set,
		deps:       make([][]workspace.ID, n),
		dependents: make([][]workspace.ID, n),
	}
}

// Build derives the graph from declared dependencies of the selected types
// (all types when none are given). Unknown names and unsatisfied
// requirements are skipped silently.
func Build(set *workspace.Set, types []workspace.DependencyType, satisfier Satisfier) *Graph {
	if len(types) == 0 {
		types = workspace.DependencyTypes
	}
	ret := New(set)
	for _, ws := range set.Items {
		for _, depType := range types {
			declared := ws.DependenciesOf(depType)
			names := make([]string, 0, len(declared))
			for name := range declared {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				candidate, ok := set.ByName(name)
				if !ok || candidate.ID == ws.ID {
					continue
				}
				if satisfier != nil && !satisfier.Satisfies(ws, candidate, declared[name], set.Root) {
					continue
				}
				ret.AddEdge(ws.ID, candidate.ID)
			}
		}
	}
	return ret
}

// AddEdge records that from depends on to. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to workspace.ID) {
	if !g.valid(from) || !g.valid(to) {
		return
	}
	for _, existing := range g.deps[from] {
		if existing == to {
			return
		}
	}
	g.deps[from] = append(g.deps[from], to)
	g.dependents[to] = append(g.dependents[to], from)
}

func (g *Graph) valid(id workspace.ID) bool {
	return int(id) >= 0 && int(id) < len(g.deps)
}

// Set returns the workspace arena the graph was built over.
func (g *Graph) Set() *workspace.Set {
	return g.set
}

// Len returns number of nodes.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Nodes returns all handles in set order.
func (g *Graph) Nodes() []workspace.ID {
	ret := make([]workspace.ID, len(g.deps))
	for i := range ret {
		ret[i] = workspace.ID(i)
	}
	return ret
}

// Dependencies returns direct dependencies of id.
func (g *Graph) Dependencies(id workspace.ID) []workspace.ID {
	if !g.valid(id) {
		return nil
	}
	return g.deps[id]
}

// Dependents returns nodes that directly depend on id, in set order of insertion.
func (g *Graph) Dependents(id workspace.ID) []workspace.ID {
	if !g.valid(id) {
		return nil
	}
	return g.dependents[id]
}

// DependencyNames returns the adjacency keyed by workspace name, mostly for logging and tests.
func (g *Graph) DependencyNames() map[string][]string {
	ret := make(map[string][]string, len(g.deps))
	for i, deps := range g.deps {
		names := make([]string, 0, len(deps))
		for _, dep := range deps {
			names = append(names, g.set.Get(dep).Name)
		}
		ret[g.set.Get(workspace.ID(i)).Name] = names
	}
	return ret
}

// DetectCycles performs a depth-first search and returns ErrCycle naming the
// first node found on a cycle.
func (g *Graph) DetectCycles() error {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(g.deps))
	var visit func(id workspace.ID) error
	visit = func(id workspace.ID) error {
		switch state[id] {
		case done:
			return nil
		case inProgress:
			name := fmt.Sprintf("#%d", id)
			if ws := g.set.Get(id); ws != nil {
				name = ws.Name
			}
			return fmt.Errorf("%w involving workspace %q", ErrCycle, name)
		}
		state[id] = inProgress
		for _, dep := range g.deps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for i := range g.deps {
		if err := visit(workspace.ID(i)); err != nil {
			return err
		}
	}
	return nil
}
