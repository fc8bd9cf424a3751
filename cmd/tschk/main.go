package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tschecker/internal/trace"
	"tschecker/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tschk",
	Short: "Static type checker for a gradually-typed JavaScript superset",
	Long:  `tschk checks already-bound programs and reports TSxxxx diagnostics.`,
}

var (
	timeoutCancel context.CancelFunc
	traceRecorder *trace.Recorder
	traceLevel    trace.Level
)

func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = cleanupTimeout

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-file timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "max concurrent files (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Int("timeout", 30, "command timeout in seconds")
	rootCmd.PersistentFlags().String("trace", "off", "trace level (off|phase|detail)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color flag against whether out looks like a
// terminal, the same auto/on/off contract the teacher's CLI exposes.
func colorEnabled(cmd *cobra.Command, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}
	if secs <= 0 {
		return fmt.Errorf("timeout must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(secs)*time.Second)
	timeoutCancel = cancel
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	levelStr, err := cmd.Root().PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to read trace flag: %w", err)
	}
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	traceLevel = level
	traceRecorder = trace.NewRecorder(level)

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "tschk: command timed out after %ds\n", secs)
			os.Exit(1)
		}
	}()

	return nil
}

func cleanupTimeout(*cobra.Command, []string) {
	if timeoutCancel != nil {
		timeoutCancel()
		timeoutCancel = nil
	}
}
