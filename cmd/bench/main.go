// Command lrubench runs a synthetic Zipf workload against single-owner LRU
// caches and exposes optional pprof/Prometheus endpoints.
//
// Usage:
//
//	lrubench [--log-level <lvl>] <command>
//
// Commands:
//
//	run     [--config <file>] [flags]   run the workload and print a report
//	config  [--config <file>] [--out f] print or write the effective config
//	version                             print the version
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "0.1.0-dev"

// logLevel is a global flag inherited by all subcommands.
var logLevel string

func main() {
	if err := buildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "lrubench",
		Short:        "Benchmark for the slot-backed LRU cache",
		Long:         "Drive single-owner LRU caches with a Zipf workload routed across owner goroutines.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides log_level in the config file)")

	root.AddCommand(
		buildRunCmd(),
		buildConfigCmd(),
		buildVersionCmd(),
	)
	return root
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lrubench %s\n", version)
		},
	}
}

// setupLogger configures the global slog logger with the given level.
func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN", "WARNING":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
