package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/config"
	"github.com/gorewood/commitgate/internal/gate"
	"github.com/gorewood/commitgate/internal/git"
	"github.com/gorewood/commitgate/internal/output"
)

// repoGate is the effective configuration and runner for the current repository.
type repoGate struct {
	root   string
	cfg    *config.Config
	runner *gate.Runner
}

// loadConfig resolves the configuration for the repository at root,
// applying --config and --strict-tools.
func loadConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	explicit, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Resolve(root, explicit)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to load config: "+err.Error(), err)
	}
	if strict, _ := cmd.Root().PersistentFlags().GetBool("strict-tools"); strict {
		cfg.StrictTools = true
	}
	return cfg, nil
}

// loadGate resolves the repository, its configuration, and a runner whose
// checkers start in the repository root, where staged paths are relative to.
func loadGate(cmd *cobra.Command, opts ...gate.Option) (*repoGate, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}

	opts = append([]gate.Option{gate.WithLogger(commandLogger(cmd))}, opts...)
	runner, err := cfg.Runner(root, gate.DefaultGitOps(), gate.OSExecutor{Dir: root}, opts...)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to configure checkers: "+err.Error(), err)
	}
	return &repoGate{root: root, cfg: cfg, runner: runner}, nil
}
