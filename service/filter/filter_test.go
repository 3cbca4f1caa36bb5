package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wsrun/model/workspace"
)

func TestPatterns_Apply(t *testing.T) {
	set, err := workspace.NewSet("/repo",
		&workspace.Workspace{Name: "app-web", Dir: "/repo/apps/web"},
		&workspace.Workspace{Name: "app-cli", Dir: "/repo/apps/cli"},
		&workspace.Workspace{Name: "@scope/ui", Dir: "/repo/libs/ui"},
		&workspace.Workspace{Name: "@scope/util", Dir: "/repo/libs/nested/util"},
	)
	require.NoError(t, err)

	var testCases = []struct {
		description string
		patterns    *Patterns
		expect      []string
	}{
		{
			description: "no patterns",
			patterns:    &Patterns{},
			expect:      []string{"app-web", "app-cli", "@scope/ui", "@scope/util"},
		},
		{
			description: "only by name",
			patterns:    &Patterns{Only: []string{"app-*"}},
			expect:      []string{"app-web", "app-cli"},
		},
		{
			description: "ignore by name",
			patterns:    &Patterns{Ignore: []string{"app-cli", "@scope/ui"}},
			expect:      []string{"app-web", "@scope/util"},
		},
		{
			description: "only and ignore",
			patterns:    &Patterns{Only: []string{"app-*"}, Ignore: []string{"*-cli"}},
			expect:      []string{"app-web"},
		},
		{
			description: "only by path",
			patterns:    &Patterns{OnlyFs: []string{"libs/**"}},
			expect:      []string{"@scope/ui", "@scope/util"},
		},
		{
			description: "ignore by path",
			patterns:    &Patterns{IgnoreFs: []string{"libs/*"}},
			expect:      []string{"app-web", "app-cli", "@scope/util"},
		},
		{
			description: "scoped name",
			patterns:    &Patterns{Only: []string{"@scope/*"}},
			expect:      []string{"@scope/ui", "@scope/util"},
		},
		{
			description: "nothing matches",
			patterns:    &Patterns{Only: []string{"missing"}},
			expect:      []string{},
		},
	}

	for _, testCase := range testCases {
		actual, err := testCase.patterns.Apply(set)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual.Names(), testCase.description)
	}
}

func TestPatterns_Validate(t *testing.T) {
	patterns := &Patterns{OnlyFs: []string{"libs/[a"}}
	err := patterns.Validate()
	assert.True(t, errors.Is(err, ErrInvalidPattern))
	set, _ := workspace.NewSet("/repo", &workspace.Workspace{Name: "a"})
	_, err = patterns.Apply(set)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	var empty *Patterns
	assert.NoError(t, empty.Validate())
	assert.True(t, empty.IsAllowed("a", "a"))
}
