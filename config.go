package wsrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/wsrun/model/run"
	"github.com/viant/wsrun/service/filter"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per repository configuration file name.
const ConfigFile = ".wsrun.yaml"

// Config is a serialisable representation of a run. It can be loaded from
// YAML or JSON and overridden by command line flags.
type Config struct {
	// Root is the monorepo root holding package.json or pnpm-workspace.yaml.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	// Parallel is false, true, physical-cores or a positive number.
	Parallel string `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	// OrderByDeps is false, true or a comma separated list of dependency types.
	OrderByDeps     string          `json:"orderByDeps,omitempty" yaml:"orderByDeps,omitempty"`
	ContinueOnError bool            `json:"continueOnError,omitempty" yaml:"continueOnError,omitempty"`
	NoPrefix        bool            `json:"noPrefix,omitempty" yaml:"noPrefix,omitempty"`
	Filter          filter.Patterns `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// DefaultConfig returns a serial, unordered, fail fast configuration for the current directory.
func DefaultConfig() *Config {
	return &Config{
		Root:        ".",
		Parallel:    "false",
		OrderByDeps: "false",
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config was nil")
	}
	if _, err := c.RunOptions(); err != nil {
		return err
	}
	return c.Filter.Validate()
}

// RunOptions normalises the run settings.
func (c *Config) RunOptions() (*run.Options, error) {
	parallel, err := run.ParseParallelism(c.Parallel)
	if err != nil {
		return nil, err
	}
	ordering, err := run.ParseOrdering(c.OrderByDeps)
	if err != nil {
		return nil, err
	}
	ret := &run.Options{Parallel: parallel, Ordering: ordering, ContinueOnError: c.ContinueOnError}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// LoadConfig reads configuration from URL on top of DefaultConfig. An empty
// URL loads ConfigFile from the working directory when it exists.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	ret := DefaultConfig()
	if fs == nil {
		fs = afs.New()
	}
	if URL == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		URL = filepath.Join(cwd, ConfigFile)
		if ok, _ := fs.Exists(ctx, URL); !ok {
			return ret, nil
		}
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
