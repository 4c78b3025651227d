package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		dir     string
		fromStr string
		toStr   string
		yearStr string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find stories across roadmap files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := search.Query{}
			if len(args) == 1 {
				query.Text = args[0]
			}

			// Window flags are resolved against --year; the window is
			// what the resolver clamps against, so it needs a year even
			// before any file is loaded.
			year := time.Now().Year()
			if yearStr != "" {
				y, err := strconv.Atoi(yearStr)
				if err != nil {
					return fmt.Errorf("invalid --year: %q", yearStr)
				}
				year = y
			}
			var err error
			query.RangeStart, query.RangeEnd, err = parseRangeFlags(fromStr, toStr, year)
			if err != nil {
				return err
			}

			results, warnings := search.Dir(dir, query)
			out := cmd.OutOrStdout()
			if w := formatter.FormatWarnings(warnings); w != "" {
				fmt.Fprint(out, w)
			}
			fmt.Fprintln(out, formatter.FormatSearchResults(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to scan for roadmap files")
	cmd.Flags().StringVar(&fromStr, "from", "", "only stories overlapping the window starting here")
	cmd.Flags().StringVar(&toStr, "to", "", "only stories overlapping the window ending here")
	cmd.Flags().StringVar(&yearStr, "year", "", "year context for --from/--to (defaults to the current year)")

	return cmd
}
