package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tilewm/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
