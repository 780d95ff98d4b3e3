/*
Package main implements an SVG Gantt chart generator that converts CSV task
data into a four-panel chart: timeline header, task list, chart body with
dependency arrows, and a resource load graph.

Dependency arrows are routed by the arrow package as elbow connectors for
end-to-start, start-to-start and end-to-end links. The chart body can be
scrolled to any offset; the scrollsync package keeps the header, task list
and load graph aligned with it.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// options holds the parsed command line.
type options struct {
	csvFile    string
	configFile string
	outputFile string
	scrollX    int
	scrollY    int
	html       bool
	watch      bool
}

// getOutputFilename determines the output filename.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the CSV file by replacing
// the extension with .svg or .html (e.g., "plan.csv" becomes "plan.svg").
func getOutputFilename(csvFile, outputFile string, html bool) string {
	if outputFile != "" {
		return outputFile
	}

	ext := ".svg"
	if html {
		ext = ".html"
	}
	base := filepath.Base(csvFile)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// render runs one full pass: load config, parse tasks, generate and write.
func render(opts options) error {
	config, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	debugPrint("Configuration loaded. Day width: %d, viewport: %dx%d",
		config.Layout.DayWidth, config.Viewport.Width, config.Viewport.Height)

	tasks, err := parseCSV(opts.csvFile)
	if err != nil {
		return fmt.Errorf("error parsing CSV file: %w", err)
	}
	debugPrint("Parsed %d tasks from %s", len(tasks), opts.csvFile)

	if len(tasks) == 0 {
		return fmt.Errorf("no tasks found in CSV file")
	}

	fmt.Printf("Loaded %d tasks from %s\n", len(tasks), opts.csvFile)

	content := generateSVG(tasks, config, opts.scrollX, opts.scrollY)
	if content == "" {
		return fmt.Errorf("failed to generate SVG content")
	}
	if opts.html {
		content = wrapHTML(content, config.Title)
	}

	outputPath := getOutputFilename(opts.csvFile, opts.outputFile, opts.html)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	fmt.Printf("Gantt chart generated successfully: %s\n", outputPath)
	return nil
}

func main() {
	var opts options
	debugFlag := flag.Bool("debug", false, "Enable debug mode for verbose output")
	flag.StringVar(&opts.csvFile, "csv", "", "CSV file with task data (required)")
	flag.StringVar(&opts.configFile, "config", "", "YAML configuration file (optional)")
	flag.StringVar(&opts.outputFile, "output", "", "Output filename (optional)")
	flag.IntVar(&opts.scrollX, "scroll-x", 0, "Horizontal scroll offset of the chart body in pixels")
	flag.IntVar(&opts.scrollY, "scroll-y", 0, "Vertical scroll offset of the chart body in pixels")
	flag.BoolVar(&opts.html, "html", false, "Wrap the SVG in an HTML page")
	flag.BoolVar(&opts.watch, "watch", false, "Re-render when the CSV or config file changes")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "  --debug             Enable debug mode for verbose output\n")
		fmt.Fprintf(os.Stderr, "  --csv <file>        CSV file with task data (required)\n")
		fmt.Fprintf(os.Stderr, "  --config <file>     YAML configuration file (optional)\n")
		fmt.Fprintf(os.Stderr, "  --output <file>     Output filename (optional)\n")
		fmt.Fprintf(os.Stderr, "  --scroll-x <px>     Horizontal scroll offset of the chart body\n")
		fmt.Fprintf(os.Stderr, "  --scroll-y <px>     Vertical scroll offset of the chart body\n")
		fmt.Fprintf(os.Stderr, "  --html              Wrap the SVG in an HTML page\n")
		fmt.Fprintf(os.Stderr, "  --watch             Re-render when input files change\n")
		fmt.Fprintf(os.Stderr, "\nThe CSV file needs id, name, start and end columns; resource and depends are optional.\n")
		fmt.Fprintf(os.Stderr, "Dependencies are written as \"1;2:SS;3:EE\" (ES is the default link kind).\n")
		fmt.Fprintf(os.Stderr, "Scrolling only has an effect when viewport.width/height are set in the config.\n")
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s --csv plan.csv --config config.yaml --output plan.svg\n", os.Args[0])
	}

	flag.Parse()
	setupLogging(*debugFlag)

	if opts.csvFile == "" {
		fmt.Fprintf(os.Stderr, "Error: CSV file is required. Use --csv to specify the file.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := render(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !opts.watch {
			os.Exit(1)
		}
	}

	if !opts.watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("csv", opts.csvFile).Str("config", opts.configFile).Msg("watching for changes")
	err := watchFiles(ctx, []string{opts.csvFile, opts.configFile}, func() {
		if err := render(opts); err != nil {
			logger.Error().Err(err).Msg("render failed")
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
