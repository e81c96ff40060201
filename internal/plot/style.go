// Package plot turns the timings log into a grouped bar chart written as a
// standalone HTML file.
package plot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SolutionStyle is the legend entry for one solution: its display label and
// bar color. The order of styles fixes the order of bars within a group.
type SolutionStyle struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Style is the color legend mapping for the chart.
type Style struct {
	Solutions []SolutionStyle `yaml:"solutions"`
}

// Lookup returns the style for a solution name.
func (s Style) Lookup(name string) (SolutionStyle, bool) {
	for _, sol := range s.Solutions {
		if sol.Name == name {
			return sol, true
		}
	}
	return SolutionStyle{}, false
}

// DefaultStyle covers the built-in solutions.
func DefaultStyle() Style {
	return Style{Solutions: []SolutionStyle{
		{Name: "duckdb", Label: "DuckDB", Color: "#80B9C8"},
		{Name: "sqlite", Label: "SQLite", Color: "#003B57"},
	}}
}

// LoadStyle reads a style override from a YAML file. An empty path returns
// the default style.
func LoadStyle(path string) (Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style file: %w", err)
	}
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Style{}, fmt.Errorf("parse style file %s: %w", path, err)
	}
	if len(s.Solutions) == 0 {
		return Style{}, fmt.Errorf("style file %s defines no solutions", path)
	}
	return s, nil
}
