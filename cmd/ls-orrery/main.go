// Command ls-orrery shows the planets of the solar system to scale, in a
// terminal or in a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/gui"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/planet"
	"github.com/litescript/ls-orrery/internal/report"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode bool
	exportPath  string
)

const (
	defaultTimeout = 10 * time.Second
	minFPS         = 1
	maxFPS         = 60
)

func main() {
	// Parse flags
	catalogURL := flag.String("catalog-url", "", "Load planets from this URL instead of the bundled catalog")
	timeout := flag.Duration("timeout", defaultTimeout, "Catalog fetch timeout (e.g., 5s)")
	useGUI := flag.Bool("gui", false, "Open a window instead of the terminal UI")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file (the terminal UI discards logs otherwise)")
	fps := flag.Int("fps", ui.DefaultConfig().FPS, "Terminal frame rate")
	seed := flag.Int64("seed", 1, "Starfield seed")
	width := flag.Int("width", gui.DefaultConfig().Width, "Window width (also used by -summary)")
	height := flag.Int("height", gui.DefaultConfig().Height, "Window height (also used by -summary)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of the UI")
	flag.StringVar(&exportPath, "export", "", "Export the catalog as JSON to file (use - for stdout)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-orrery v%s\n", version.Version)
		return
	}

	// Validate frame rate
	if *fps < minFPS {
		*fps = minFPS
	} else if *fps > maxFPS {
		*fps = maxFPS
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))
	closeLog, err := setupLogOutput(logger, *logFile, *useGUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	planet.SetLogger(logger.Named("planet"))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	var source planet.Source = planet.EmbeddedSource{}
	if *catalogURL != "" {
		source = planet.NewFetcher(*catalogURL, planet.WithTimeout(*timeout))
	}
	app := state.NewApp(state.DefaultConfig())

	// Headless mode: no UI. Also used when stdout is not a terminal.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || exportPath != "" || (!*useGUI && !isTTY)
	if headless {
		if err := runHeadless(ctx, source, float64(*width), float64(*height), logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *useGUI {
		cfg := gui.DefaultConfig()
		cfg.Width, cfg.Height = *width, *height
		cfg.Frame.Seed = *seed

		loads := make(chan state.LoadOutcome, 1)
		go func() {
			loads <- loadCatalog(ctx, source, logger)
			close(loads)
		}()

		if err := gui.New(app, cfg, logger.Named("gui"), loads).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create TUI model
	cfg := ui.DefaultConfig()
	cfg.FPS = *fps
	cfg.Frame.Seed = *seed
	model := ui.New(app, cfg, logger.Named("ui"))

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	// Load the catalog in the background
	go func() {
		p.Send(ui.CatalogLoadedMsg{Outcome: loadCatalog(ctx, source, logger)})
	}()

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// setupLogOutput points the logger at logFile. Without a file the terminal
// UI discards logs since stderr shares the screen; the window and headless
// modes keep stderr.
func setupLogOutput(logger *logging.Logger, logFile string, useGUI bool) (func(), error) {
	if logFile == "" {
		if !useGUI && !summaryMode && exportPath == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			logger.SetOutput(io.Discard)
		}
		return func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() { _ = f.Close() }, nil
}

func loadCatalog(ctx context.Context, source planet.Source, logger *logging.Logger) state.LoadOutcome {
	logger.Debug("Loading catalog from %s...", source.Name())

	result := source.Load(ctx)
	if result.Error != nil {
		logger.Error("Catalog load failed: %v", result.Error)
		return state.OutcomeFrom(result)
	}

	logger.Debug("Catalog loaded: %d planets, %d rejected in %v",
		result.Parsed.Catalog.Len(), len(result.Parsed.Rejected), result.Duration)
	if result.RequestID != "" {
		logger.Debug("Catalog request ID %s", result.RequestID)
	}
	for _, err := range result.Parsed.Rejected {
		logger.Warn("Rejected entry: %v", err)
	}
	return state.OutcomeFrom(result)
}

// runHeadless loads the catalog once and prints the requested outputs.
func runHeadless(ctx context.Context, source planet.Source, width, height float64, logger *logging.Logger) error {
	result := source.Load(ctx)
	if result.Error != nil {
		return result.Error
	}
	for _, err := range result.Parsed.Rejected {
		logger.Warn("Rejected entry: %v", err)
	}
	cat := result.Parsed.Catalog
	now := time.Now()

	// Export JSON if requested
	if exportPath != "" {
		export := report.ExportSnapshot(cat, result.Origin, now)
		if exportPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(exportPath)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	// Summary table unless only an export was asked for
	if summaryMode || exportPath == "" {
		report.WriteSummaryTable(os.Stdout, cat, width, height, now)
	}
	return nil
}
