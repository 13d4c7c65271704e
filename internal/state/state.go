// Package state holds the application state shared between the catalog
// loader and the frame driver, and the view-mode state machine.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/planet"
)

// ErrCatalogAlreadySet is returned when a catalog is assigned twice.
var ErrCatalogAlreadySet = errors.New("catalog already set")

// Config holds configuration for the application state.
type Config struct {
	// RequireCatalog gates view transitions on a loaded catalog.
	RequireCatalog bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		RequireCatalog: true,
	}
}

// App owns the catalog slot. The catalog is assigned once by the loader
// and read by the frame driver every frame.
type App struct {
	mu sync.RWMutex

	catalog  *planet.Catalog
	loaded   bool
	loadErr  error
	loadedAt time.Time
	loadTook time.Duration
	origin   string
	rejected int
	warnings []string

	cfg Config
}

// NewApp creates application state with an empty catalog.
func NewApp(cfg Config) *App {
	return &App{cfg: cfg}
}

// LoadOutcome describes a finished catalog load.
type LoadOutcome struct {
	Catalog  *planet.Catalog
	Origin   string
	Duration time.Duration
	Rejected int
	Warnings []string
	Err      error
}

// OutcomeFrom converts a source result into a LoadOutcome.
func OutcomeFrom(res planet.LoadResult) LoadOutcome {
	out := LoadOutcome{
		Origin:   res.Origin,
		Duration: res.Duration,
		Err:      res.Error,
	}
	if res.Parsed != nil {
		out.Catalog = res.Parsed.Catalog
		out.Rejected = len(res.Parsed.Rejected)
		out.Warnings = append([]string(nil), res.Parsed.Warnings...)
	}
	return out
}

// SetCatalog is the single assignment point for the catalog. A failed load
// records its error and leaves the catalog empty; a later successful load
// may still fill it. Once a catalog is set it never changes.
func (a *App) SetCatalog(out LoadOutcome) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded {
		return ErrCatalogAlreadySet
	}

	a.loadedAt = time.Now()
	a.loadTook = out.Duration
	a.origin = out.Origin
	a.loadErr = out.Err
	if out.Err != nil || out.Catalog == nil {
		return nil
	}

	a.catalog = out.Catalog
	a.loaded = true
	a.rejected = out.Rejected
	a.warnings = out.Warnings
	return nil
}

// Catalog returns the loaded catalog, or nil before the load completes.
func (a *App) Catalog() *planet.Catalog {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog
}

// Ready reports whether the session may leave the menu.
func (a *App) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.cfg.RequireCatalog {
		return true
	}
	return a.loaded
}

// HasData returns true once a catalog has been assigned.
func (a *App) HasData() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// Status is a snapshot of load bookkeeping for status lines.
type Status struct {
	Loaded   bool
	Planets  int
	Origin   string
	LoadedAt time.Time
	Duration time.Duration
	Rejected int
	Warnings []string
	Err      error
}

// Status returns a consistent snapshot of load state.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	warnings := make([]string, len(a.warnings))
	copy(warnings, a.warnings)

	return Status{
		Loaded:   a.loaded,
		Planets:  a.catalog.Len(),
		Origin:   a.origin,
		LoadedAt: a.loadedAt,
		Duration: a.loadTook,
		Rejected: a.rejected,
		Warnings: warnings,
		Err:      a.loadErr,
	}
}
