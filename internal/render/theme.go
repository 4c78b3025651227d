package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme controls the visual appearance of the generated timeline. It maps
// directly to an optional YAML file so teams can restyle the output
// without touching templates.
type Theme struct {
	Font struct {
		Family string `yaml:"family"`
		Size   int    `yaml:"size"`
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"`
		GridLine   string `yaml:"grid_line"`
		MonthText  string `yaml:"month_text"`
		BarDefault string `yaml:"bar_default"`
		BarText    string `yaml:"bar_text"`
		Annotation string `yaml:"annotation"`
		AtRisk     string `yaml:"at_risk"`
		Done       string `yaml:"done"`
	} `yaml:"colors"`
	Layout struct {
		RowHeight    int `yaml:"row_height"`    // px per story row
		ColumnWidth  int `yaml:"column_width"`  // px per grid column
		EpicGap      int `yaml:"epic_gap"`      // px between epic sections
		HeaderHeight int `yaml:"header_height"` // px for the month header row
	} `yaml:"layout"`
}

// DefaultTheme returns the stock look: a light background, slate grid
// lines and a blue default bar color.
func DefaultTheme() Theme {
	var t Theme
	t.Font.Family = "Helvetica, Arial, sans-serif"
	t.Font.Size = 13
	t.Colors.Background = "#ffffff"
	t.Colors.GridLine = "#e5e7eb"
	t.Colors.MonthText = "#374151"
	t.Colors.BarDefault = "#3b82f6"
	t.Colors.BarText = "#ffffff"
	t.Colors.Annotation = "#fef3c7"
	t.Colors.AtRisk = "#ef4444"
	t.Colors.Done = "#10b981"
	t.Layout.RowHeight = 34
	t.Layout.ColumnWidth = 12
	t.Layout.EpicGap = 18
	t.Layout.HeaderHeight = 40
	return t
}

// LoadTheme reads a YAML theme file, overlaying it onto the defaults so a
// partial file only overrides what it names.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return theme, fmt.Errorf("reading theme file: %w", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return theme, fmt.Errorf("parsing theme file %s: %w", path, err)
	}
	return theme, nil
}
