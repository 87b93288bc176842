// Command tourplan computes collision-aware inspection tours and partitions
// viewpoints among robots.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/logging"
	"github.com/aeroinspect/tourplan/internal/planner"
	"github.com/aeroinspect/tourplan/internal/tour"
)

// Exit statuses; each unrecoverable failure class gets its own so callers
// can tell a bad config from an un-navigable world.
const (
	exitGeneric       = 1
	exitConfiguration = 2
	exitPlanning      = 3
	exitOracle        = 4
	exitAssignment    = 5
)

func main() {
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "tourplan",
		Short: "tourplan - collision-aware inspection tour planning",
		Long: `tourplan builds a symmetric inter-viewpoint cost matrix, drives a
sequencing oracle to obtain a visiting order, and stitches per-edge
collision-checked paths into one closed tour per robot.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if logLevel == "debug" {
				level = slog.LevelDebug
			}
			logging.Init(level, logFormat, nil)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (info, debug)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(clusterCmd())
	rootCmd.AddCommand(scenarioCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps a failure to its process exit code.
func exitStatus(err error) int {
	switch {
	case errors.Is(err, planner.ErrUnknownMethod), errors.Is(err, cluster.ErrUnknownClusterMethod):
		return exitConfiguration
	case errors.Is(err, planner.ErrNoPath):
		return exitPlanning
	case errors.Is(err, tour.ErrNoSequence), errors.Is(err, tour.ErrNoAnchor), errors.Is(err, tour.ErrBadSequence):
		return exitOracle
	case errors.Is(err, cluster.ErrBadAssignment):
		return exitAssignment
	default:
		return exitGeneric
	}
}
