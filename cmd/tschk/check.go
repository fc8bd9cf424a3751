package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/diagfmt"
	"tschecker/internal/driver"
	"tschecker/internal/observ"
	"tschecker/internal/source"
	"tschecker/internal/ui"
)

var (
	checkFormat   string
	checkStrict   bool
	checkCache    bool
	checkWatch    bool
	checkInterval time.Duration
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "enable strict-mode checks (noImplicitAny and friends)")
	checkCmd.Flags().BoolVar(&checkCache, "cache", true, "reuse the on-disk diagnostic cache across runs")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "rerun the check on an interval and render a live progress view instead of exiting")
	checkCmd.Flags().DurationVar(&checkInterval, "watch-interval", 2*time.Second, "how often --watch reruns the check")
}

var checkCmd = &cobra.Command{
	Use:   "check [demo ...]",
	Short: "Run the checker over its built-in demo programs",
	Long: `check runs the built-in demo programs through the checker and reports
their diagnostics. This module has no source-text parser (a binder/parser
stage is out of scope), so there is no file argument to point at arbitrary
.ts source — name one or more demo programs to narrow which ones run, or
pass none to run all of them.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", checkFormat)
	}

	fs := source.NewFileSet()
	programs := demoPrograms(fs)
	if len(args) > 0 {
		wanted := make(map[string]bool, len(args))
		for _, a := range args {
			wanted[a] = true
		}
		filtered := programs[:0]
		for _, p := range programs {
			if wanted[p.name] {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no demo program matches %v", args)
		}
		programs = filtered
	}

	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	opts := driver.Options{Jobs: jobs, Tracer: traceRecorder, TraceLevel: traceLevel}
	if showTimings {
		opts.Timings = make(map[string]observ.Report)
	}
	if checkCache {
		if c, err := driver.OpenDiskCache("tschk"); err == nil {
			opts.Cache = c
		}
	}

	checkOpts := config.Options{Strict: checkStrict}.Resolve()

	runOnce := func(ctx context.Context) ([]driver.FileResult, error) {
		files := make([]driver.FileInput, len(programs))
		for i, p := range programs {
			in := p.input
			f, _ := fs.GetByPath(in.Path)
			if f != nil {
				in.Hash = sha256.Sum256(f.Content)
			}
			files[i] = in
		}
		results, err := driver.Run(ctx, files, checkOpts, opts)
		if err != nil {
			return nil, err
		}
		driver.SortByPath(results)
		return results, nil
	}

	if checkWatch {
		model := ui.NewWatchModel(cmd.Context(), runOnce, checkInterval)
		program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
		_, err := program.Run()
		return err
	}

	results, err := runOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("check run: %w", err)
	}

	color := colorEnabled(cmd, os.Stdout)
	hasErrors := false
	bags := make([]*diag.Bag, 0, len(results))
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			hasErrors = true
		}
		bags = append(bags, r.Bag)
		switch checkFormat {
		case "json":
			if err := diagfmt.JSON(cmd.OutOrStdout(), r.Bag, fs, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
				return err
			}
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "-- %s --\n", r.Path)
			diagfmt.Pretty(cmd.OutOrStdout(), r.Bag, fs, diagfmt.PrettyOpts{Color: color, Context: 1, ShowNotes: true})
			if r.Bag.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no diagnostics")
			}
		}
	}

	if showTimings {
		for path, report := range opts.Timings {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2fms\n", path, report.TotalMS)
		}
	}

	if checkFormat == "pretty" {
		diagfmt.Summary(cmd.OutOrStdout(), bags)
	}

	if hasErrors {
		// Diagnostics are already printed above; suppress cobra's redundant
		// usage/error banner and just signal a non-zero exit.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
