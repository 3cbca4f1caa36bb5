package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wsrun/model/workspace"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func TestService_Discover(t *testing.T) {
	var testCases = []struct {
		description string
		files       map[string]string
		expect      []string
		expectErr   error
	}{
		{
			description: "package.json workspaces list",
			files: map[string]string{
				"package.json":                     `{"private":true,"workspaces":["packages/*","!packages/ignored"]}`,
				"packages/b/package.json":          `{"name":"b","version":"1.0.0"}`,
				"packages/a/package.json":          `{"name":"a","version":"1.0.0","dependencies":{"b":"^1.0.0"}}`,
				"packages/ignored/package.json":    `{"name":"ignored"}`,
				"packages/unnamed/package.json":    `{"version":"1.0.0"}`,
				"packages/no-manifest/readme.md":   `none`,
				"node_modules/dep/package.json":    `{"name":"dep"}`,
				"packages/a/node_modules/x/p.json": `{}`,
			},
			expect: []string{"a", "b"},
		},
		{
			description: "package.json workspaces object",
			files: map[string]string{
				"package.json":              `{"workspaces":{"packages":["apps/*","libs/**"],"nohoist":["**/x"]}}`,
				"apps/web/package.json":     `{"name":"web"}`,
				"libs/ui/core/package.json": `{"name":"ui-core"}`,
				"libs/ui/package.json":      `{"name":"ui"}`,
			},
			expect: []string{"web", "ui-core", "ui"},
		},
		{
			description: "pnpm workspace",
			files: map[string]string{
				"package.json":            `{"name":"root","private":true}`,
				"pnpm-workspace.yaml":     "packages:\n  - 'tools/*'\n",
				"tools/cli/package.json":  `{"name":"cli"}`,
				"tools/lint/package.json": `{"name":"lint"}`,
			},
			expect: []string{"cli", "lint"},
		},
		{
			description: "no workspaces declared",
			files: map[string]string{
				"package.json": `{"name":"single"}`,
			},
			expectErr: ErrNoWorkspaces,
		},
		{
			description: "patterns match nothing",
			files: map[string]string{
				"package.json": `{"workspaces":["packages/*"]}`,
			},
			expectErr: ErrNoWorkspaces,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, testCase.files)
			set, err := New().Discover(context.Background(), root)
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), "%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, set.Names())
			for _, ws := range set.Items {
				assert.True(t, filepath.IsAbs(ws.Dir))
			}
		})
	}
}

func TestService_Discover_Manifest(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":          `{"workspaces":["pkg/*"]}`,
		"pkg/app/package.json":  `{"name":"app","version":"2.1.0","dependencies":{"lib":"^1"},"devDependencies":{"tool":"file:../tool"},"peerDependencies":{"react":"*"}}`,
		"pkg/lib/package.json":  `{"name":"lib","version":"1.3.0"}`,
		"pkg/tool/package.json": `{"name":"tool","version":"0.0.1","optionalDependencies":{"lib":"workspace:*"}}`,
	})
	set, err := New(WithConcurrency(2)).Discover(context.Background(), root)
	require.NoError(t, err)
	app, ok := set.ByName("app")
	require.True(t, ok)
	assert.Equal(t, "2.1.0", app.Version)
	assert.Equal(t, filepath.Join(root, "pkg", "app"), app.Dir)
	assert.Equal(t, map[string]string{"lib": "^1"}, app.DependenciesOf(workspace.Dependencies))
	assert.Equal(t, map[string]string{"tool": "file:../tool"}, app.DependenciesOf(workspace.DevDependencies))
	assert.Equal(t, map[string]string{"react": "*"}, app.DependenciesOf(workspace.PeerDependencies))
	tool, _ := set.ByName("tool")
	assert.Equal(t, map[string]string{"lib": "workspace:*"}, tool.DependenciesOf(workspace.OptionalDependencies))
	assert.Equal(t, root, set.Root)
}

func TestService_Discover_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":         `{"workspaces":["pkg/*"]}`,
		"pkg/bad/package.json": `{"name": [}`,
	})
	_, err := New().Discover(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a/x/package.json":      `{}`,
		"a/y/package.json":      `{}`,
		"b/z/package.json":      `{}`,
		"b/z/deep/package.json": `{}`,
	})
	dirs, err := Expand(root, []string{"./a/*/", "a/x", "b/**", "!b/z/deep"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x", "a/y", "b/z"}, dirs)

	_, err = Expand(root, []string{"a/[x"})
	assert.Error(t, err)
}
