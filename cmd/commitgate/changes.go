package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/commitgate/internal/gate"
)

// newChangesCmd creates the changes command.
func newChangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "changes",
		Short: "List the staged files the gate would check",
		Long: `List the staged added, copied, modified, and renamed files, compared
against HEAD, or against the empty tree before the first commit.

Each file is shown with the categories whose suffixes it matches.`,
		Args: cobra.NoArgs,
		RunE: runChanges,
	}
}

func runChanges(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	loaded, err := loadGate(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	baseline := loaded.runner.ResolveBaseline(ctx)
	files, err := loaded.runner.ChangedFiles(ctx, baseline)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if files == nil {
			files = []string{}
		}
		return printer.WriteJSON(map[string]any{
			"baseline": baseline,
			"files":    files,
			"count":    len(files),
		})
	}

	printer.Section("Staged Changes")
	printer.KeyValue("Baseline", describeBaseline(baseline))
	if len(files) == 0 {
		printer.Println(printer.Dim("nothing staged"))
		return nil
	}
	printer.Println()

	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file, matchingCategories(loaded.runner.Categories(), file)})
	}
	printer.Table([]string{"FILE", "CATEGORIES"}, rows)
	return nil
}

func describeBaseline(baseline gate.Baseline) string {
	if baseline.Kind == gate.BaselineEmptyTree {
		return "empty tree (no commits yet)"
	}
	return baseline.Ref
}

func matchingCategories(categories []gate.Category, file string) string {
	var names []string
	for _, category := range categories {
		if category.Matches(file) {
			names = append(names, category.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
