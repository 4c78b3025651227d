package cli

import (
	"fmt"

	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/dates"
	"github.com/calebhart/gantry/internal/roadmap"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <roadmap.json> [more.json ...]",
		Short: "Check roadmap files for problems",
		Long: "Checks structure (titles, statuses, duplicate ids) and, with --strict, " +
			"also reports date strings that will not parse and would render best-effort.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := false

			for _, path := range args {
				schema, err := roadmap.ParseFile(path)
				if err != nil {
					return err
				}

				problems := roadmap.ValidateSchema(schema)
				if strict {
					problems = append(problems, lintDates(schema)...)
				}

				if len(problems) == 0 {
					fmt.Fprintf(out, "%s %s\n", formatter.StyleGreen.Render("ok"), path)
					continue
				}
				failed = true
				fmt.Fprintf(out, "%s %s\n", formatter.StyleRed.Render("fail"), path)
				for _, p := range problems {
					fmt.Fprintf(out, "  - %s\n", p.Error())
				}
			}

			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "also flag unparseable date strings")
	return cmd
}

// lintDates reports date fields that will fall back to best-effort
// rendering. Normal validation tolerates them; strict mode does not.
func lintDates(schema *roadmap.Schema) []error {
	var problems []error
	for i, e := range schema.Epics {
		for j, s := range e.Stories {
			if raw := s.StartRaw(); raw != "" {
				if _, ok := dates.Normalize(raw, schema.Year); !ok {
					problems = append(problems, fmt.Errorf(
						"epics[%d].stories[%d]: start %q will not parse", i, j, raw))
				}
			}
			if raw := s.EndRaw(); raw != "" {
				if _, ok := dates.Normalize(raw, schema.Year); !ok {
					problems = append(problems, fmt.Errorf(
						"epics[%d].stories[%d]: end %q will not parse", i, j, raw))
				}
			}
		}
	}
	return problems
}
