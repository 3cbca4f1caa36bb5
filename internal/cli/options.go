package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/viant/wsrun"
	"github.com/viant/wsrun/model/run"
)

// Options holds raw command line flags.
type Options struct {
	Cwd             string
	Config          string
	Parallel        string
	OrderByDeps     []string
	ContinueOnError bool
	Prefix          bool
	NoPrefix        bool
	Only            []string
	Ignore          []string
	OnlyFs          []string
	IgnoreFs        []string
	LogLevel        string
	LogFormat       string
	TraceFile       string
}

func (o *Options) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.Cwd, "cwd", "", "monorepo root (default: current directory)")
	flags.StringVar(&o.Config, "config", "", "configuration file (default: ./"+wsrun.ConfigFile+" when present)")
	flags.StringVar(&o.Parallel, "parallel", "", "run across workspaces in parallel; =<N> limits processes, =physical-cores uses the number of physical CPU cores")
	flags.Lookup("parallel").NoOptDefVal = "true"
	flags.StringSliceVar(&o.OrderByDeps, "order-by-deps", nil, "run a workspace only after its dependencies finished; =<types> considers only the listed dependency types")
	flags.Lookup("order-by-deps").NoOptDefVal = "true"
	flags.BoolVar(&o.ContinueOnError, "continue-on-error", false, "run on all workspaces regardless of failures")
	flags.BoolVar(&o.Prefix, "prefix", true, "prefix stdout/stderr lines with the workspace name")
	flags.BoolVar(&o.NoPrefix, "no-prefix", false, "do not prefix stdout/stderr lines with the workspace name")
	flags.StringArrayVar(&o.Only, "only", nil, "only run on workspaces with names matching the pattern (repeatable)")
	flags.StringArrayVar(&o.Ignore, "ignore", nil, "ignore workspaces with names matching the pattern (repeatable)")
	flags.StringArrayVar(&o.OnlyFs, "only-fs", nil, "only run on workspaces with paths matching the pattern (repeatable)")
	flags.StringArrayVar(&o.IgnoreFs, "ignore-fs", nil, "ignore workspaces with paths matching the pattern (repeatable)")
	flags.StringVar(&o.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&o.LogFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&o.TraceFile, "trace-file", "", "write OpenTelemetry spans to the file")
}

// apply overlays flags set on the command line onto cfg and normalises them.
func (o *Options) apply(flags *pflag.FlagSet, cfg *wsrun.Config) error {
	if flags.Changed("cwd") {
		cfg.Root = o.Cwd
	}
	if flags.Changed("parallel") {
		if _, err := run.ParseParallelism(o.Parallel); err != nil {
			return usageErrorf("Unexpected value for --parallel: " + o.Parallel)
		}
		cfg.Parallel = o.Parallel
	}
	if flags.Changed("order-by-deps") {
		value := strings.Join(o.OrderByDeps, ",")
		if _, err := run.ParseOrdering(o.OrderByDeps...); err != nil {
			return usageErrorf("Unexpected dependency type in --order-by-deps: " + value)
		}
		cfg.OrderByDeps = value
	}
	if flags.Changed("continue-on-error") {
		cfg.ContinueOnError = o.ContinueOnError
	}
	if flags.Changed("prefix") {
		cfg.NoPrefix = !o.Prefix
	}
	if flags.Changed("no-prefix") {
		cfg.NoPrefix = o.NoPrefix
	}
	cfg.Filter.Only = append(cfg.Filter.Only, o.Only...)
	cfg.Filter.Ignore = append(cfg.Filter.Ignore, o.Ignore...)
	cfg.Filter.OnlyFs = append(cfg.Filter.OnlyFs, o.OnlyFs...)
	cfg.Filter.IgnoreFs = append(cfg.Filter.IgnoreFs, o.IgnoreFs...)
	if err := cfg.Validate(); err != nil {
		return usageErrorf(err.Error())
	}
	return nil
}
