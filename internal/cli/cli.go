// Package cli implements the wsrun command line: flag normalisation, the
// command after "--", and mapping of failures onto exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/wsrun"
	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/progress"
	"github.com/viant/wsrun/service/orchestrator"
	"github.com/viant/wsrun/service/process"
	"github.com/viant/wsrun/tracing"
)

const description = `Run a command in every workspace of a JavaScript monorepo.

Workspaces are read from the root package.json "workspaces" field or from
pnpm-workspace.yaml. Filtering flags can be specified multiple times; patterns
are globs where * does not cross "/" and ** does.`

// New creates the root command.
func New(version string, stdout, stderr io.Writer) *cobra.Command {
	options := &Options{}
	cmd := &cobra.Command{
		Use:           "wsrun [flags] -- <command> [...args]",
		Short:         "Run a command across monorepo workspaces",
		Long:          description,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, commandArgs, err := commandOf(cmd, args)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), cmd, options, version, command, commandArgs, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf(err.Error())
	})
	options.register(cmd.Flags())
	return cmd
}

func commandOf(cmd *cobra.Command, args []string) (string, []string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		if len(args) > 0 {
			return "", nil, usageErrorf("Unexpected value for -- <command> [...args]")
		}
		return "", nil, usageErrorf("wsrun needs a command to run")
	}
	if dash > 0 {
		return "", nil, usageErrorf(fmt.Sprintf("Unexpected arguments before --: %v", args[:dash]))
	}
	if len(args) == 0 || args[0] == "" {
		return "", nil, usageErrorf("wsrun needs a command to run")
	}
	return args[0], args[1:], nil
}

func execute(ctx context.Context, cmd *cobra.Command, options *Options, version, command string, args []string, stdout, stderr io.Writer) error {
	logger := ctxlog.New(options.LogLevel, options.LogFormat, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)
	cfg, err := wsrun.LoadConfig(ctx, nil, options.Config)
	if err != nil {
		return err
	}
	if err = options.apply(cmd.Flags(), cfg); err != nil {
		return err
	}

	srvOptions := []wsrun.Option{
		wsrun.WithLogger(logger),
		wsrun.WithStdout(stdout),
		wsrun.WithStderr(stderr),
		wsrun.WithProgressListener(func(p progress.Progress) {
			if p.Done() {
				logger.Info("run finished", "runID", p.RunID, "strategy", p.Strategy, "completed", p.Completed, "failed", p.Failed)
			}
		}),
	}
	if options.TraceFile != "" {
		srvOptions = append(srvOptions, wsrun.WithTracing("wsrun", version, options.TraceFile))
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				logger.Warn("failed to flush traces", "error", err)
			}
		}()
	}
	return wsrun.New(srvOptions...).Exec(ctx, cfg, command, args)
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, version string, stdout, stderr io.Writer) int {
	cmd := New(version, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	Report(cmd, err, stderr)
	return 1
}

// Report renders err: usage errors with the usage text, child failures not
// at all since children already streamed their own diagnostics.
func Report(cmd *cobra.Command, err error, stderr io.Writer) {
	var usageErr *UsageError
	switch {
	case errors.As(err, &usageErr):
		_, _ = fmt.Fprintln(stderr)
		_, _ = color.New(color.FgRed).Fprintln(stderr, usageErr.Message)
		_, _ = fmt.Fprintln(stderr)
		_, _ = fmt.Fprint(stderr, cmd.UsageString())
	case orchestrator.IsAggregate(err), errors.Is(err, process.ErrProcessFailed):
	default:
		_, _ = fmt.Fprintf(stderr, "wsrun: %v\n", err)
	}
}
