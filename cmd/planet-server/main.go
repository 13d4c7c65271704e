// Command planet-server serves the bundled planet catalog over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/planet"
	"github.com/litescript/ls-orrery/internal/server"
)

func main() {
	defaults := server.DefaultConfig()

	addr := flag.String("addr", defaults.Addr, "Listen address")
	allowOrigin := flag.String("allow-origin", strings.Join(defaults.AllowOrigins, ","), "Comma-separated CORS origins (* for any)")
	release := flag.Bool("release", false, "Run gin in release mode")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))
	planet.SetLogger(logger.Named("planet"))

	res, err := planet.Parse(planet.Bundled())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bundled catalog: %v\n", err)
		os.Exit(1)
	}
	for _, err := range res.Rejected {
		logger.Warn("Rejected entry: %v", err)
	}

	cfg := defaults
	cfg.Addr = *addr
	cfg.Release = *release
	cfg.AllowOrigins = splitOrigins(*allowOrigin)

	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.New(cfg, res.Catalog, logger.Named("http")).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
