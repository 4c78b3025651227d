package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/roadmap"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <file.json>",
		Short: "Interactively scaffold a new roadmap file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			var (
				title     string
				yearStr   = strconv.Itoa(time.Now().Year() + 1)
				epicTitle string
			)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Roadmap title").
						Placeholder("Platform 2026").
						Value(&title).
						Validate(requireNonEmpty("title")),
					huh.NewInput().
						Title("Display year").
						Value(&yearStr).
						Validate(validateYear),
					huh.NewInput().
						Title("First epic title").
						Placeholder("Billing rework").
						Value(&epicTitle).
						Validate(requireNonEmpty("epic title")),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("running init form: %w", err)
			}

			year, _ := strconv.Atoi(yearStr)
			schema := roadmap.Schema{
				Title: title,
				Year:  year,
				Epics: []roadmap.EpicImport{{
					Title: epicTitle,
					Stories: []roadmap.StoryImport{{
						Title:     "First story",
						StartDate: fmt.Sprintf("%d-01-06", year),
						EndDate:   "MAR",
					}},
				}},
			}

			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding roadmap: %w", err)
			}
			if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				formatter.StyleGreen.Render("created"), path)
			return nil
		},
	}
	return cmd
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateYear(s string) error {
	y, err := strconv.Atoi(s)
	if err != nil || y < 2000 || y > 2100 {
		return fmt.Errorf("enter a 4-digit year")
	}
	return nil
}
