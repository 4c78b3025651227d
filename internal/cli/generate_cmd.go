package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/dates"
	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/render"
	"github.com/calebhart/gantry/internal/roadmap"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		outDir     string
		themePath  string
		forceBelow bool
		sortByDate bool
		fromStr    string
		toStr      string
	)

	cmd := &cobra.Command{
		Use:   "generate <roadmap.json> [more.json ...]",
		Short: "Render roadmap files to HTML timelines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := render.DefaultTheme()
			if themePath != "" {
				var err error
				theme, err = render.LoadTheme(themePath)
				if err != nil {
					return err
				}
			}

			for _, path := range args {
				rm, err := roadmap.Load(path)
				if err != nil {
					return err
				}

				opts := render.Options{
					ForceAnnotationsBelow: forceBelow,
					SortByDate:            sortByDate,
				}
				opts.RangeStart, opts.RangeEnd, err = parseRangeFlags(fromStr, toStr, rm.Year)
				if err != nil {
					return err
				}

				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				written, err := render.RenderToFile(outDir, name, rm, theme, opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					formatter.StyleGreen.Render("wrote"), written)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory for generated HTML")
	cmd.Flags().StringVar(&themePath, "theme", "", "YAML theme file")
	cmd.Flags().BoolVar(&forceBelow, "annotations-below", false, "place every annotation box on the row below its story")
	cmd.Flags().BoolVar(&sortByDate, "sort-by-date", false, "order stories by start date instead of file order")
	cmd.Flags().StringVar(&fromStr, "from", "", "only show the window starting at this date (any roadmap date grammar)")
	cmd.Flags().StringVar(&toStr, "to", "", "only show the window ending at this date")

	return cmd
}

// parseRangeFlags normalizes the optional --from/--to window using the
// same grammars as roadmap dates.
func parseRangeFlags(fromStr, toStr string, year int) (from, to domain.NormalizedDate, err error) {
	if fromStr != "" {
		d, ok := dates.Normalize(fromStr, year)
		if !ok {
			return from, to, fmt.Errorf("unrecognized --from date: %q", fromStr)
		}
		from = d
	}
	if toStr != "" {
		d, ok := dates.Normalize(toStr, year)
		if !ok {
			return from, to, fmt.Errorf("unrecognized --to date: %q", toStr)
		}
		to = d
	}
	return from, to, nil
}
