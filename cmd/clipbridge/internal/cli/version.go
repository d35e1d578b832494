package cli

import (
	"github.com/spf13/cobra"

	"clipbridge/internal/version"
)

// addVersionCommand adds the version command
func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of clipbridge with build and clipboard backend information.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Printer.Structured() {
				info, err := version.GetInfo()
				if err != nil {
					return err
				}
				return app.Printer.Record(info)
			}

			detailed, _ := cmd.Flags().GetBool("detailed")
			if detailed {
				app.Printer.Println(version.GetDetailedVersion())
			} else {
				app.Printer.Println(version.GetFormattedVersion())
			}
			return nil
		},
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)
}
