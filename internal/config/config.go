// Package config loads the commitgate configuration.
//
// A repository configures the gate with .commitgate.yaml or
// .commitgate.toml at its root. Without one, <Dir()>/config.yaml applies,
// and without that the built-in PHP/JS/CSS/SCSS defaults are used.
// Fields left out of a file keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/commitgate/internal/envfile"
	"github.com/gorewood/commitgate/internal/gate"
)

// Config file names looked up at the repository root, in order.
const (
	RepoYAMLFile   = ".commitgate.yaml"
	RepoTOMLFile   = ".commitgate.toml"
	GlobalFileName = "config.yaml"
)

// Config is the effective gate configuration.
type Config struct {
	Categories []gate.CategorySpec `json:"categories" yaml:"categories" toml:"categories"`
	Tests      *gate.CheckerSpec   `json:"tests"      yaml:"tests"      toml:"tests"`
	// StrictTools counts a checker that cannot run as a failure.
	StrictTools bool `json:"strict_tools" yaml:"strict_tools" toml:"strict_tools"`
	// Timeout bounds each checker invocation. Zero disables it.
	Timeout time.Duration `json:"timeout"  yaml:"timeout"  toml:"timeout"`
	EnvFile string        `json:"env_file" yaml:"env_file" toml:"env_file"`

	// Source is the file the configuration came from, empty for defaults.
	Source string `json:"source" yaml:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	tests := gate.DefaultTests()
	return &Config{
		Categories: gate.DefaultCategories(),
		Tests:      &tests,
	}
}

// Find returns the configuration file that applies to the repository at
// root, or "" when none exists.
func Find(root string) (string, error) {
	candidates := []string{
		filepath.Join(root, RepoYAMLFile),
		filepath.Join(root, RepoTOMLFile),
	}
	if dir := Dir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, GlobalFileName))
	}

	for _, path := range candidates {
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("checking config %s: %w", path, err)
		}
	}
	return "", nil
}

// Load reads the configuration at path and fills unset fields with the
// defaults. An empty path yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var file Config
	if err := decode(path, data, &file); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(file.Categories) > 0 {
		cfg.Categories = file.Categories
	}
	if file.Tests != nil {
		cfg.Tests = file.Tests
	}
	cfg.StrictTools = file.StrictTools
	cfg.Timeout = file.Timeout
	cfg.EnvFile = file.EnvFile
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, and otherwise the file Find locates
// for root.
func Resolve(root, explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		found, err := Find(root)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return Load(path)
}

func decode(path string, data []byte, into *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(into)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys %v", undecoded)
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every category, the test step, and the timeout.
func (c *Config) Validate() error {
	if _, err := gate.BuildCategories(c.Categories, nil, nil); err != nil {
		return err
	}
	if c.Tests != nil {
		if err := c.Tests.Validate(); err != nil {
			return fmt.Errorf("tests: %w", err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Env returns the extra checker environment from EnvFile. A relative
// EnvFile is resolved against root.
func (c *Config) Env(root string) ([]string, error) {
	if c.EnvFile == "" {
		return nil, nil
	}
	path := c.EnvFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return envfile.Read(path)
}

// Runner builds a gate runner for the repository at root.
func (c *Config) Runner(root string, gitOps gate.GitOps, executor gate.Executor, opts ...gate.Option) (*gate.Runner, error) {
	env, err := c.Env(root)
	if err != nil {
		return nil, err
	}

	categories, err := gate.BuildCategories(c.Categories, executor, env)
	if err != nil {
		return nil, err
	}

	var tests gate.Checker
	if c.Tests != nil {
		tests = gate.NewCommandChecker(*c.Tests, executor, env)
	}

	base := []gate.Option{gate.WithStrictTools(c.StrictTools), gate.WithTimeout(c.Timeout)}
	return gate.NewRunner(gitOps, categories, tests, append(base, opts...)...), nil
}
