package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gantry",
		Short: "Roadmap timeline builder",
		Long:  "gantry renders team roadmap JSON files onto a 12-month timeline grid and serves the result as static HTML.",
	}

	root.AddCommand(
		newGenerateCmd(),
		newServeCmd(),
		newValidateCmd(),
		newSearchCmd(),
		newInitCmd(),
		newAssistCmd(app),
	)

	return root
}
