package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/viant/wsrun/internal/clock"
	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/model/workspace"
)

// Separator follows the padded workspace name in a prefix.
const Separator = " │ "

var palette = []color.Attribute{color.FgCyan, color.FgMagenta, color.FgGreen, color.FgYellow, color.FgBlue}

// Runner spawns workspace commands.
type Runner struct {
	stdout   *lockedWriter
	stderr   *lockedWriter
	prefix   bool
	colors   *bool
	shell    string
	group    bool
	registry *Registry
	spawned  atomic.Int64
}

// New creates a runner writing to the host's stdout and stderr with prefixing enabled.
func New(opts ...Option) *Runner {
	ret := &Runner{
		stdout:   &lockedWriter{w: os.Stdout},
		stderr:   &lockedWriter{w: os.Stderr},
		prefix:   true,
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Registry returns the registry tracking this runner's children.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Fork returns a runner with the same settings, a fresh Registry and its
// own colour sequence.
func (r *Runner) Fork() *Runner {
	return &Runner{
		stdout:   r.stdout,
		stderr:   r.stderr,
		prefix:   r.prefix,
		colors:   r.colors,
		shell:    r.shell,
		group:    r.group,
		registry: NewRegistry(),
	}
}

// CommandLine joins command and arguments the way the shell receives them.
func CommandLine(command string, args []string) string {
	return strings.TrimSpace(strings.Join(append([]string{command}, args...), " "))
}

// Prefix returns the uncoloured prefix for a workspace name padded to width.
func Prefix(name string, width int) string {
	if pad := width - len([]rune(name)); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	return name + Separator
}

// Run executes command with args in ws.Dir and waits for it to exit. A
// non-zero exit yields *Error; failing to start the process returns the
// underlying error unchanged.
func (r *Runner) Run(ctx context.Context, ws *workspace.Workspace, command string, args []string, all *workspace.Set) error {
	line := CommandLine(command, args)
	cmd := shellCommand(r.shell, line, r.group)
	cmd.Dir = ws.Dir
	cmd.Env = environ(ws.Dir)

	stdout := newPendingLineWriter(r.stdout)
	stderr := newPendingLineWriter(r.stderr)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger := ctxlog.FromContext(ctx)
	if err := cmd.Start(); err != nil {
		stdout.setPrefix("")
		stderr.setPrefix("")
		logger.Debug("process start failed", "command", line, "error", err)
		return err
	}
	prefix := ""
	if r.prefix {
		index := r.spawned.Add(1) - 1
		prefix = r.paint(index, Prefix(ws.Name, all.MaxNameLen()))
	}
	stdout.setPrefix(prefix)
	stderr.setPrefix(prefix)
	remove := r.registry.Add(ws.Name, cmd.Process)
	defer remove()
	started := clock.Now()
	logger.Debug("process started", "command", line, "pid", cmd.Process.Pid)

	err := cmd.Wait()
	if flushErr := errors.Join(stdout.Flush(), stderr.Flush()); flushErr != nil {
		logger.Warn("failed to write process output", "error", flushErr)
	}
	if err == nil {
		logger.Debug("process exited", "pid", cmd.Process.Pid, "elapsed", clock.Since(started))
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("process failed", "pid", cmd.Process.Pid, "exitCode", exitErr.ExitCode(), "elapsed", clock.Since(started))
		return &Error{Workspace: ws.Name, Command: line, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return err
}

func (r *Runner) paint(index int64, text string) string {
	c := color.New(palette[int(index)%len(palette)])
	if r.colors != nil {
		if *r.colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c.Sprint(text)
}

// environ returns the host environment with <dir>/node_modules/.bin prepended to PATH.
func environ(dir string) []string {
	bin := filepath.Join(dir, "node_modules", ".bin")
	env := os.Environ()
	for i, item := range env {
		key, value, ok := strings.Cut(item, "=")
		if ok && strings.EqualFold(key, "PATH") {
			env[i] = key + "=" + bin + string(os.PathListSeparator) + value
			return env
		}
	}
	return append(env, "PATH="+bin)
}
