package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/config"
	"github.com/gorewood/commitgate/internal/gate"
	"github.com/gorewood/commitgate/internal/git"
)

// newCategoriesCmd creates the categories command.
func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the effective checker configuration",
		Long: `Show the categories the gate validates, in order, with the suffixes
they match and the checkers they run, followed by the test step.

Outside a git repository only the global config and the built-in
defaults are considered.`,
		Args: cobra.NoArgs,
		RunE: runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := git.RepoRoot()
	if err != nil {
		root = "."
	}
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		data := map[string]any{
			"source":       cfg.Source,
			"categories":   cfg.Categories,
			"tests":        cfg.Tests,
			"strict_tools": cfg.StrictTools,
		}
		if cfg.Timeout > 0 {
			data["timeout"] = cfg.Timeout.String()
		}
		return printer.WriteJSON(data)
	}

	printer.Section("Configuration")
	printer.KeyValue("Source", describeSource(cfg))
	printer.KeyValue("Strict tools", fmt.Sprint(cfg.StrictTools))
	if cfg.Timeout > 0 {
		printer.KeyValue("Timeout", cfg.Timeout.String())
	}

	printer.Section("Categories")
	rows := make([][]string, 0, len(cfg.Categories)+1)
	for _, category := range cfg.Categories {
		for _, checker := range category.Checkers {
			rows = append(rows, []string{category.Name, strings.Join(category.Suffixes, " "), checker.Name, commandLine(checker), detection(checker)})
		}
	}
	if cfg.Tests != nil {
		rows = append(rows, []string{gate.TestsCategory, "-", cfg.Tests.Name, commandLine(*cfg.Tests), detection(*cfg.Tests)})
	}
	printer.Table([]string{"CATEGORY", "SUFFIXES", "CHECK", "COMMAND", "FAILS ON"}, rows)
	return nil
}

func describeSource(cfg *config.Config) string {
	if cfg.Source == "" {
		return "built-in defaults"
	}
	return cfg.Source
}

func commandLine(spec gate.CheckerSpec) string {
	return strings.Join(spec.Command, " ")
}

// detection describes the failure rule of spec.
func detection(spec gate.CheckerSpec) string {
	var rules []string
	if spec.Marker != "" {
		rules = append(rules, fmt.Sprintf("%q in output", spec.Marker))
	}
	for _, code := range spec.FailExitCodes {
		rules = append(rules, fmt.Sprintf("exit %d", code))
	}
	return strings.Join(rules, ", ")
}
