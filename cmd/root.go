// Package cmd provides the CLI interface for termbar.
// It parses command-line arguments and hands them to the app package.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/andpalmier/termbar/internal/app"
	"github.com/andpalmier/termbar/internal/progress"
	"github.com/fatih/color"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

const appName = "termbar"

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitTooSmall = 2
)

// Execute runs the CLI application and returns an exit code.
func Execute(version, commit, date string) int {
	root := newRootCmd(version, commit, date)
	return run(root, os.Stderr)
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	if showBacktrace(root) {
		fmt.Fprintln(stderr, color.RedString("Error: %+v", err))
	} else {
		fmt.Fprintln(stderr, color.RedString("Error: %v", err))
	}
	return exitCode(err)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	kind := progress.KindOf(err)
	if kind == 0 {
		kind = progress.KindOf(errors.Cause(err))
	}
	if kind == progress.KindInvalidSize {
		return exitTooSmall
	}
	return exitError
}

func showBacktrace(root *cobra.Command) bool {
	v, err := root.PersistentFlags().GetBool("backtrace")
	return err == nil && v
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cfg := app.Config{Appearance: app.DefaultAppearance()}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Draw single-line terminal progress bars",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Print a line per completed task")
	pf.Bool("backtrace", len(os.Getenv("TERMBAR_BACKTRACE")) > 0, "Print error stack traces")

	root.AddCommand(
		newRenderCmd(&cfg),
		newRunCmd(&cfg),
		newFitCmd(),
	)
	return root
}

// addAppearanceFlags binds the display settings shared by render and run.
func addAppearanceFlags(cmd *cobra.Command, cfg *app.Config) {
	a := &cfg.Appearance
	f := cmd.Flags()
	f.StringVar(&a.Percent, "percent", a.Percent, "Percentage placement: in-bar, before-prefix, after-prefix, before-suffix, after-suffix, dont-show")
	f.StringVar(&a.Step, "step", a.Step, "Step counter placement (same values as --percent)")
	f.StringVar(&a.Ring, "ring", a.Ring, "Spinner placement: before-prefix, after-suffix, dont-show")
	f.StringVar(&a.Filled, "filled", a.Filled, "Character for the completed part of the bar")
	f.StringVar(&a.Empty, "empty", a.Empty, "Character for the remaining part of the bar")
	f.StringVar(&a.Prefix, "prefix", a.Prefix, "Text left of the bar")
	f.StringVar(&a.Suffix, "suffix", a.Suffix, "Text right of the bar")
	f.StringVar(&a.Frames, "frames", a.Frames, "Spinner frames, one per character")
	f.IntVar(&a.Frequency, "frequency", a.Frequency, "Steps per spinner frame")
	f.BoolVar(&a.Reverse, "reverse", a.Reverse, "Run the spinner frames backwards")
	f.IntVarP(&cfg.Width, "width", "W", 0, "Line width in columns (0 = detect)")
}

func newRenderCmd(cfg *app.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <current> <max>",
		Short: "Print one progress bar line",
		Example: `  termbar render 3 10 --step in-bar
  termbar render 50 100 --width 40 --prefix build --ring before-prefix
  termbar render 7 20 --bar-length 30 --step after-suffix`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, max := "", ""
			if len(args) > 0 {
				current = args[0]
			}
			if len(args) > 1 {
				max = args[1]
			}
			c := *cfg
			c.Stdout, c.Stderr = cmd.OutOrStdout(), cmd.ErrOrStderr()
			return app.RenderOnce(c, current, max)
		},
	}
	addAppearanceFlags(cmd, cfg)
	cmd.Flags().IntVarP(&cfg.BarLength, "bar-length", "L", 0, "Fixed bar length, ignoring --width (0 = fit the line to the width)")
	return cmd
}

func newRunCmd(cfg *app.Config) *cobra.Command {
	var tasks int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate a progress bar over simulated tasks",
		Example: `  termbar run --max 200 --workers 4 --delay 20ms --ring after-suffix
  termbar run --max 50 --fail-every 7 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up context with cancellation for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			c := *cfg
			c.Stdout, c.Stderr = cmd.OutOrStdout(), cmd.ErrOrStderr()
			return app.Run(ctx, c, tasks)
		},
	}
	addAppearanceFlags(cmd, cfg)
	f := cmd.Flags()
	f.IntVarP(&tasks, "max", "n", 100, "Number of simulated tasks")
	f.IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of parallel workers")
	f.DurationVarP(&cfg.Delay, "delay", "d", 50*time.Millisecond, "Duration of each simulated task")
	f.IntVar(&cfg.FailEvery, "fail-every", 0, "Make every Nth task fail (0 = never)")
	return cmd
}

func newFitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit <text> <width>",
		Short: "Truncate or pad text to an exact width",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Errorf("width %q is not an integer", args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "|%s|\n", progress.Fit(args[0], n))
			return nil
		},
	}
}

// versionString formats version information.
func versionString(version, commit, date string) string {
	s := fmt.Sprintf("%s version %s", appName, version)
	if commit != "none" {
		s += fmt.Sprintf("\n  commit: %s", commit)
	}
	if date != "unknown" {
		s += fmt.Sprintf("\n  built:  %s", date)
	}
	return s
}
