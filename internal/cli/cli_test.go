package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wsrun"
)

func monorepo(t *testing.T) string {
	root := t.TempDir()
	files := map[string]string{
		"package.json":              `{"private":true,"workspaces":["packages/*"]}`,
		"packages/app/package.json": `{"name":"app","version":"1.0.0","dependencies":{"lib":"^1.0.0"}}`,
		"packages/lib/package.json": `{"name":"lib","version":"1.0.0"}`,
	}
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func TestRun_UsageErrors(t *testing.T) {
	var testCases = []struct {
		description string
		args        []string
		expect      string
	}{
		{description: "missing command", args: []string{"--parallel"}, expect: "wsrun needs a command to run"},
		{description: "empty command", args: []string{"--"}, expect: "wsrun needs a command to run"},
		{description: "command without dash", args: []string{"echo"}, expect: "Unexpected value for -- <command> [...args]"},
		{description: "bad parallel", args: []string{"--parallel=lots", "--", "echo"}, expect: "Unexpected value for --parallel"},
		{description: "zero parallel", args: []string{"--parallel=0", "--", "echo"}, expect: "Unexpected value for --parallel"},
		{description: "bad dependency type", args: []string{"--order-by-deps=bundled", "--", "echo"}, expect: "Unexpected dependency type in --order-by-deps"},
		{description: "unknown flag", args: []string{"--unknown", "--", "echo"}, expect: "unknown flag: --unknown"},
		{description: "invalid pattern", args: []string{"--only", "[a", "--", "echo"}, expect: "invalid pattern"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			code := Run(context.Background(), testCase.args, "1.0.0", stdout, stderr)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), testCase.expect)
			assert.Contains(t, stderr.String(), "Usage:")
		})
	}
}

func TestRun_Exec(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell fixtures require sh")
	}
	root := monorepo(t)

	var testCases = []struct {
		description  string
		args         []string
		expectCode   int
		expectStdout string
		expectStderr string
	}{
		{
			description:  "prefixed serial",
			args:         []string{"--cwd", root, "--", "echo", "hi"},
			expectStdout: "app │ hi\nlib │ hi\n",
		},
		{
			description:  "unprefixed ordered",
			args:         []string{"--cwd", root, "--order-by-deps", "--no-prefix", "--", "basename", "$(pwd)"},
			expectStdout: "lib\napp\n",
		},
		{
			description:  "prefix disabled by value",
			args:         []string{"--cwd", root, "--prefix=false", "--only", "lib", "--", "echo", "x"},
			expectStdout: "x\n",
		},
		{
			description: "child failure is silent",
			args:        []string{"--cwd", root, "--no-prefix", "--", "exit", "3"},
			expectCode:  1,
		},
		{
			description: "aggregate failure is silent",
			args:        []string{"--cwd", root, "--no-prefix", "--continue-on-error", "--parallel=2", "--", "exit", "3"},
			expectCode:  1,
		},
		{
			description:  "discovery failure is reported",
			args:         []string{"--cwd", t.TempDir(), "--", "echo"},
			expectCode:   1,
			expectStderr: "wsrun: could not find any workspaces",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			code := Run(context.Background(), testCase.args, "1.0.0", stdout, stderr)
			assert.Equal(t, testCase.expectCode, code, stderr.String())
			if testCase.expectStdout != "" {
				assert.Equal(t, testCase.expectStdout, stdout.String())
			}
			if testCase.expectStderr == "" {
				assert.NotContains(t, stderr.String(), "wsrun:")
				assert.NotContains(t, stderr.String(), "Usage:")
			} else {
				assert.Contains(t, stderr.String(), testCase.expectStderr)
			}
		})
	}
}

func TestRun_Config(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell fixtures require sh")
	}
	root := monorepo(t)
	location := filepath.Join(t.TempDir(), wsrun.ConfigFile)
	require.NoError(t, os.WriteFile(location, []byte("root: "+root+"\nnoPrefix: true\nfilter:\n  only: [app]\n"), 0o644))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := Run(context.Background(), []string{"--config", location, "--", "echo", "configured"}, "1.0.0", stdout, stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "configured\n", stdout.String())

	stdout.Reset()
	code = Run(context.Background(), []string{"--config", location, "--prefix", "--", "echo", "flag wins"}, "1.0.0", stdout, stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "app │ flag wins\n", stdout.String())
}

func TestRun_VersionAndHelp(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	assert.Equal(t, 0, Run(context.Background(), []string{"--version"}, "1.2.3", stdout, stderr))
	assert.Contains(t, stdout.String(), "1.2.3")

	stdout.Reset()
	assert.Equal(t, 0, Run(context.Background(), []string{"--help"}, "1.2.3", stdout, stderr))
	assert.Contains(t, stdout.String(), "--order-by-deps")
	assert.Contains(t, stdout.String(), "--ignore-fs")
}

func TestCommandOf(t *testing.T) {
	cmd := New("dev", &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--parallel", "--", "npm", "run", "build"}))
	command, args, err := commandOf(cmd, cmd.Flags().Args())
	require.NoError(t, err)
	assert.Equal(t, "npm", command)
	assert.Equal(t, []string{"run", "build"}, args)
}

func TestRun_FailFastTerminatesSiblings(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell fixtures require sh")
	}
	root := monorepo(t)
	command := `if [ "$(basename "$(pwd)")" = app ]; then sleep 0.3; exit 1; fi; sleep 1; touch finished`
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := Run(context.Background(), []string{"--cwd", root, "--parallel", "--", command}, "1.0.0", stdout, stderr)
	assert.Equal(t, 1, code, stderr.String())

	time.Sleep(1500 * time.Millisecond)
	_, err := os.Stat(filepath.Join(root, "packages", "lib", "finished"))
	assert.True(t, os.IsNotExist(err), "sibling kept running after the command returned")
}
