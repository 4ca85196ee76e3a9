// Package commands implements the CLI command handlers for indlovu.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/yukhold/indlovu/internal/appstore"
	"github.com/yukhold/indlovu/internal/config"
)

// headerWidth is the rule width of section headers.
const headerWidth = 60

// printHeader prints a bold section header the way run logs have always
// looked.
func printHeader(out io.Writer, text string) {
	rule := strings.Repeat("=", headerWidth)
	bold := color.New(color.Bold)

	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	bold.Fprintf(out, "  %s\n", text)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
}

// newLogger builds the run logger from the configured level. Diagnostics go
// to stderr; stdout is reserved for run progress.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level

	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return slog.New(handler)
}

// newClient validates credentials, issues a run token, and builds the
// analytics client. Any failure here is fatal before the first API call.
func newClient(cfg *config.Config) (*appstore.Client, error) {
	token, err := appstore.IssueToken(cfg)
	if err != nil {
		return nil, err
	}

	return appstore.NewClient(cfg, token), nil
}
