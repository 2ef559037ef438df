package cmd

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tilewm/internal/domain/entity"
)

var sortCmd = &cobra.Command{
	Use:   "sort [name...]",
	Short: "Sort workspace names the way outputs order them",
	Long: `Print workspace names in output order: names starting with a number
sort by that number and come first, every other name keeps its position.

Names are read from the arguments, or one per line from stdin.

Examples:
  tilewm sort 10 web 2 1:mail
  swaymsg -t get_workspaces | jq -r '.[].name' | tilewm sort`,
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)
}

func runSort(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				names = append(names, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read names: %w", err)
		}
	}

	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, entity.CompareWorkspaceNames)

	out := cmd.OutOrStdout()
	for _, name := range sorted {
		fmt.Fprintln(out, name)
	}
	return nil
}
