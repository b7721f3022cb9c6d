// Package config loads and validates the optional .debuganalyze YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional configuration file at the project root.
const FileName = ".debuganalyze"

// Default values for the analysis invocation.
const (
	DefaultCommand  = "flutter"
	DefaultTarget   = "lib/presentation/home/home_screen.dart"
	DefaultReport   = "analysis_debug.txt"
	DefaultDebounce = 500 * time.Millisecond
)

// DefaultArgs are placed between the command and the target.
var DefaultArgs = []string{"analyze"}

// History drivers.
const (
	HistoryNone   = ""
	HistoryJSON   = "json"
	HistorySQLite = "sqlite"
)

// Config holds the parsed .debuganalyze configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version    int           `yaml:"version"`
	Command    string        `yaml:"command"`
	Args       []string      `yaml:"args"`
	Target     string        `yaml:"target"`
	Report     string        `yaml:"report"`
	RawTimeout string        `yaml:"timeout"` // e.g. "5m"; empty means no deadline
	History    HistoryConfig `yaml:"history"`
	Watch      WatchConfig   `yaml:"watch"`
}

// HistoryConfig controls whether run outcomes are kept beyond the report file.
type HistoryConfig struct {
	Driver string `yaml:"driver"` // "", "json" or "sqlite"
	Path   string `yaml:"path"`   // directory for json, database file for sqlite
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	RawDebounce string `yaml:"debounce"` // e.g. "500ms"
}

// CommandName returns the configured executable or the default.
func (c *Config) CommandName() string {
	if c.Command != "" {
		return c.Command
	}
	return DefaultCommand
}

// CommandArgs returns the configured leading arguments or the defaults.
func (c *Config) CommandArgs() []string {
	if c.Args != nil {
		return c.Args
	}
	return DefaultArgs
}

// TargetPath returns the configured source file or the default.
func (c *Config) TargetPath() string {
	if c.Target != "" {
		return c.Target
	}
	return DefaultTarget
}

// Argv returns the full argument list passed to the command: the leading
// arguments followed by the target.
func (c *Config) Argv() []string {
	args := append([]string(nil), c.CommandArgs()...)
	return append(args, c.TargetPath())
}

// ReportPath returns the configured report file or the default.
func (c *Config) ReportPath() string {
	if c.Report != "" {
		return c.Report
	}
	return DefaultReport
}

// Timeout returns the configured timeout, or 0 when the run may block
// indefinitely.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// Debounce returns the configured watch debounce or the default.
func (c *Config) Debounce() time.Duration {
	if c.Watch.RawDebounce != "" {
		d, err := time.ParseDuration(c.Watch.RawDebounce)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultDebounce
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.History.Driver {
	case HistoryNone:
	case HistoryJSON, HistorySQLite:
		if c.History.Path == "" {
			return fmt.Errorf("history.path is required for driver %q", c.History.Driver)
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	if err := validDuration("timeout", c.RawTimeout); err != nil {
		return err
	}
	if err := validDuration("watch.debounce", c.Watch.RawDebounce); err != nil {
		return err
	}
	return nil
}

// validDuration accepts an empty value or a positive duration.
func validDuration(field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be positive", field, raw)
	}
	return nil
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config      *Config
	ProjectRoot string // directory containing pubspec.yaml; falls back to workspace
}

// Load reads the .debuganalyze file from the project root.
// The project root is discovered by walking upward from workspace
// looking for pubspec.yaml. If no .debuganalyze file exists, a default
// Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findProjectRoot(workspace)
	if err != nil {
		root = workspace
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, ProjectRoot: root}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, ProjectRoot: root}, nil
}

// findProjectRoot walks upward from dir looking for a directory containing pubspec.yaml.
func findProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "pubspec.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("pubspec.yaml not found")
		}
		dir = parent
	}
}
