package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wsrun/model/workspace"
)

var acceptAll = SatisfierFunc(func(from, candidate *workspace.Workspace, requirement, root string) bool {
	return requirement != "reject"
})

func newSet(t *testing.T, workspaces ...*workspace.Workspace) *workspace.Set {
	set, err := workspace.NewSet("/repo", workspaces...)
	require.NoError(t, err)
	return set
}

func TestBuild(t *testing.T) {
	var testCases = []struct {
		description string
		types       []workspace.DependencyType
		expect      map[string][]string
	}{
		{
			description: "all types",
			expect: map[string][]string{
				"a": {"c"},
				"b": {"c", "a"},
				"c": {},
			},
		},
		{
			description: "runtime only",
			types:       []workspace.DependencyType{workspace.Dependencies},
			expect: map[string][]string{
				"a": {},
				"b": {"c"},
				"c": {},
			},
		},
	}

	for _, testCase := range testCases {
		set := newSet(t,
			(&workspace.Workspace{Name: "a"}).
				WithDependency(workspace.DevDependencies, "c", "1.0.0").
				WithDependency(workspace.Dependencies, "external", "^2.0.0"),
			(&workspace.Workspace{Name: "b"}).
				WithDependency(workspace.Dependencies, "c", "1.0.0").
				WithDependency(workspace.DevDependencies, "c", "1.0.0").
				WithDependency(workspace.PeerDependencies, "a", "1.0.0").
				WithDependency(workspace.OptionalDependencies, "d", "reject"),
			&workspace.Workspace{Name: "c"},
			(&workspace.Workspace{Name: "d"}).WithDependency(workspace.Dependencies, "d", "1.0.0"),
		)
		g := Build(set, testCase.types, acceptAll)
		actual := g.DependencyNames()
		for name, expect := range testCase.expect {
			assert.Equal(t, expect, actual[name], testCase.description+": "+name)
		}
		assert.Empty(t, actual["d"], testCase.description+": self reference dropped")
	}
}

func TestGraph_Dependents(t *testing.T) {
	set := newSet(t, &workspace.Workspace{Name: "a"}, &workspace.Workspace{Name: "b"}, &workspace.Workspace{Name: "c"})
	g := New(set)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	g.AddEdge(1, 2)
	g.AddEdge(1, 7)
	assert.Equal(t, []workspace.ID{0, 1}, g.Dependents(2))
	assert.Equal(t, []workspace.ID{2}, g.Dependencies(1))
	assert.Nil(t, g.Dependencies(9))
	assert.Equal(t, []workspace.ID{0, 1, 2}, g.Nodes())
	assert.NoError(t, g.DetectCycles())
}

func TestGraph_DetectCycles(t *testing.T) {
	set := newSet(t,
		(&workspace.Workspace{Name: "a"}).WithDependency(workspace.Dependencies, "b", "*"),
		(&workspace.Workspace{Name: "b"}).WithDependency(workspace.Dependencies, "c", "*"),
		(&workspace.Workspace{Name: "c"}).WithDependency(workspace.Dependencies, "a", "*"),
		&workspace.Workspace{Name: "d"},
	)
	g := Build(set, nil, acceptAll)
	err := g.DetectCycles()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), `"a"`)
}
