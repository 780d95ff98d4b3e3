package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gantt2svg/internal/arrow"
)

// Config represents the complete configuration for SVG Gantt generation.
// This structure maps directly to YAML configuration files and controls:
//   - Font and color settings
//   - Row, bar and panel dimensions
//   - Dependency arrow sizes
//   - The visible viewport used for scroll synchronization
//
// Any field left out of the YAML file keeps its default value.
type Config struct {
	Title string `yaml:"title"` // Optional chart title shown in the header corner
	Font  struct {
		Family string `yaml:"family"` // Font family for all text elements (e.g., "Arial, sans-serif")
		Size   int    `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"` // SVG background color
		Grid       string `yaml:"grid"`       // Day grid lines
		Header     string `yaml:"header"`     // Header and task list background
		Bar        string `yaml:"bar"`        // Task bar fill
		BarStroke  string `yaml:"bar_stroke"` // Task bar border
		Text       string `yaml:"text"`       // All text
		Arrow      string `yaml:"arrow"`      // Dependency arrows
		Load       string `yaml:"load"`       // Resource load graph bars

		Completion   string `yaml:"completion"`   // Completed part of a task bar
		Deadline     string `yaml:"deadline"`     // Deadline marker
		Consolidated string `yaml:"consolidated"` // Consolidated progress marker
		Container    string `yaml:"container"`    // Container task bars
	} `yaml:"colors"`
	Layout struct {
		ListWidth      int `yaml:"list_width"`       // Width of the task list panel in pixels
		HeaderHeight   int `yaml:"header_height"`    // Height of the timeline header in pixels
		LoadHeight     int `yaml:"load_height"`      // Height of the resource load graph in pixels (0 hides it)
		RowHeight      int `yaml:"row_height"`       // Height of one task row in pixels
		BarHeight      int `yaml:"bar_height"`       // Height of a task bar inside its row
		DayWidth       int `yaml:"day_width"`        // Horizontal pixels per day
		Padding        int `yaml:"padding"`          // Space before the first and after the last day
		ArrowLineWidth int `yaml:"arrow_line_width"` // Thickness of dependency arrow segments
		Indent         int `yaml:"indent"`           // Task list indent per tree level
	} `yaml:"layout"`
	Chart struct {
		ShowLabels    bool `yaml:"show_labels"`    // Draw task labels to the right of each bar
		ShowResources bool `yaml:"show_resources"` // Draw assigned resources to the right of each bar
	} `yaml:"chart"`
	Dependency arrow.Constants `yaml:"dependency"`
	Viewport   struct {
		Width  int `yaml:"width"`  // Visible chart width in pixels (0 = whole chart)
		Height int `yaml:"height"` // Visible chart height in pixels (0 = whole chart)
	} `yaml:"viewport"`
}

// getDefaultConfig returns the default configuration:
//   - 12px Arial font on a white background
//   - 28px rows with 14px bars and 24px per day
//   - 200px task list, 40px header, 60px load graph
//   - labels and resources hidden next to bars
//   - arrow constants matching the task renderer (corner 20, height 10)
//   - no viewport, so the whole chart is visible
func getDefaultConfig() Config {
	var config Config
	config.Font.Family = "Arial, sans-serif"
	config.Font.Size = 12

	config.Colors.Background = "#ffffff"
	config.Colors.Grid = "#eeeeee"
	config.Colors.Header = "#f5f5f5"
	config.Colors.Bar = "#4285f4"
	config.Colors.BarStroke = "#2a56c6"
	config.Colors.Text = "#333333"
	config.Colors.Arrow = "#555555"
	config.Colors.Load = "#f4b400"
	config.Colors.Completion = "#0f9d58"
	config.Colors.Deadline = "#db4437"
	config.Colors.Consolidated = "#9e9e9e"
	config.Colors.Container = "#666666"

	config.Layout.ListWidth = 200
	config.Layout.HeaderHeight = 40
	config.Layout.LoadHeight = 60
	config.Layout.RowHeight = 28
	config.Layout.BarHeight = 14
	config.Layout.DayWidth = 24
	config.Layout.Padding = 40
	config.Layout.ArrowLineWidth = 1
	config.Layout.Indent = 12

	config.Dependency = arrow.DefaultConstants()
	return config
}

// loadConfig loads configuration from a YAML file or returns the default
// config if no file is specified. Values in the file override the defaults.
func loadConfig(configPath string) (Config, error) {
	config := getDefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// validateConfig rejects sizes the layout cannot work with.
func validateConfig(config Config) error {
	switch {
	case config.Layout.RowHeight <= 0:
		return fmt.Errorf("layout.row_height must be positive, got %d", config.Layout.RowHeight)
	case config.Layout.DayWidth <= 0:
		return fmt.Errorf("layout.day_width must be positive, got %d", config.Layout.DayWidth)
	case config.Layout.BarHeight <= 0 || config.Layout.BarHeight > config.Layout.RowHeight:
		return fmt.Errorf("layout.bar_height must be between 1 and row_height (%d), got %d",
			config.Layout.RowHeight, config.Layout.BarHeight)
	case config.Layout.Indent < 0:
		return fmt.Errorf("layout.indent must not be negative, got %d", config.Layout.Indent)
	case config.Viewport.Width < 0 || config.Viewport.Height < 0:
		return fmt.Errorf("viewport size must not be negative")
	}
	return nil
}
