package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andpalmier/termbar/internal/progress"
	"github.com/andpalmier/termbar/internal/runner"
	"github.com/andpalmier/termbar/internal/terminal"
	"github.com/fatih/color"
	"github.com/pingcap/errors"
)

// Appearance holds the textual form of every display setting.
type Appearance struct {
	Percent   string
	Step      string
	Ring      string
	Filled    string
	Empty     string
	Prefix    string
	Suffix    string
	Frames    string // one frame per character
	Frequency int
	Reverse   bool
}

// DefaultAppearance matches the defaults of progress.New.
func DefaultAppearance() Appearance {
	return Appearance{
		Percent:   progress.BeforeSuffix.String(),
		Step:      progress.DontShow.String(),
		Ring:      progress.DontShow.String(),
		Filled:    "#",
		Empty:     " ",
		Frames:    strings.Join(progress.DefaultFrames, ""),
		Frequency: 1,
	}
}

// Apply validates every setting and copies it into s.
func (a Appearance) Apply(s *progress.State) error {
	placements := []struct {
		text string
		set  func(progress.Placement) error
	}{
		{a.Percent, s.SetShowPercent},
		{a.Step, s.SetShowStep},
		{a.Ring, s.SetShowRingCursor},
	}
	for _, p := range placements {
		pl, err := progress.ParsePlacement(p.text)
		if err != nil {
			return err
		}
		if err := p.set(pl); err != nil {
			return err
		}
	}

	frames := make([]string, 0, len(a.Frames))
	for i := 0; i < len(a.Frames); i++ {
		frames = append(frames, a.Frames[i:i+1])
	}
	setters := []func() error{
		func() error { return s.SetFilledChar(a.Filled) },
		func() error { return s.SetEmptyChar(a.Empty) },
		func() error { return s.SetPrefix(a.Prefix) },
		func() error { return s.SetSuffix(a.Suffix) },
		func() error { return s.SetRingCursorFrames(frames) },
		func() error { return s.SetRingCursorFrequency(a.Frequency) },
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	s.SetRingCursorReverse(a.Reverse)
	return nil
}

// Config holds the application configuration
type Config struct {
	Appearance Appearance
	Width      int // 0 detects the terminal width
	BarLength  int // fixed bar length for RenderOnce; 0 fits the bar to Width
	Workers    int
	Delay      time.Duration
	FailEvery  int // every Nth simulated task fails; 0 disables
	Quiet      bool
	Verbose    bool

	Stdout io.Writer
	Stderr io.Writer
}

func (c *Config) defaults() {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
}

// widthFor returns the configured fixed width or a live query of f.
func (c Config) widthFor(f *os.File) progress.WidthProvider {
	if c.Width > 0 {
		return terminal.FixedWidth(c.Width)
	}
	return terminal.New(f)
}

// RenderOnce renders current/max once and prints it as a plain line to stdout.
func RenderOnce(cfg Config, current, max string) error {
	cfg.defaults()

	state, err := progress.Parse(current, max)
	if err != nil {
		return errors.Trace(err)
	}
	if err := cfg.Appearance.Apply(state); err != nil {
		return errors.Trace(err)
	}
	line, err := renderLine(cfg, state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cfg.Stdout, line)
	return errors.Trace(err)
}

func renderLine(cfg Config, state *progress.State) (string, error) {
	if cfg.BarLength > 0 {
		line, err := progress.RenderBar(state, cfg.BarLength)
		return line, errors.Trace(err)
	}
	w, err := cfg.widthFor(os.Stdout).Width()
	if err != nil {
		return "", errors.Annotate(err, "query terminal width")
	}
	line, err := progress.Render(state, w)
	return line, errors.Trace(err)
}

// Run animates a bar on stderr while a worker pool runs the given number of simulated tasks.
func Run(ctx context.Context, cfg Config, tasks int) error {
	cfg.defaults()

	state, err := progress.New(0, tasks)
	if err != nil {
		return errors.Trace(err)
	}
	if err := cfg.Appearance.Apply(state); err != nil {
		return errors.Trace(err)
	}

	quiet := cfg.Quiet
	if !quiet && cfg.Width == 0 && !terminal.IsTerminal(os.Stderr) {
		yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
		fmt.Fprintf(cfg.Stderr, "%s stderr is not a terminal, progress bar disabled\n", yellow("⚠"))
		quiet = true
	}

	pool := runner.New(runner.Config{Workers: cfg.Workers})
	if !quiet {
		printHeader(cfg, tasks, pool.Workers())
	}

	rep := progress.NewReporter(state, progress.Options{
		Width:   cfg.widthFor(os.Stderr),
		Sink:    terminal.NewLineWriter(cfg.Stderr),
		Quiet:   quiet,
		Verbose: cfg.Verbose,
		Noun:    "tasks",
	})
	if err := rep.Start(); err != nil {
		return errors.Trace(err)
	}

	results, runErr := pool.Run(ctx, tasks, simulate(cfg.Delay, cfg.FailEvery), rep)

	if progress.KindOf(runErr) != 0 {
		// The bar itself could not be drawn; the line is unusable.
		return errors.Trace(runErr)
	}
	if ctx.Err() != nil {
		if err := rep.Error("interrupted"); err != nil {
			return errors.Trace(err)
		}
	} else if err := rep.Finish(); err != nil {
		return errors.Trace(err)
	}

	if !quiet {
		printSummary(cfg, results)
	}
	return errors.Trace(runErr)
}

// simulate returns a task that sleeps for delay and fails every failEvery-th index.
func simulate(delay time.Duration, failEvery int) runner.TaskFunc {
	return func(ctx context.Context, index int) error {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if failEvery > 0 && (index+1)%failEvery == 0 {
			return errors.New("simulated failure")
		}
		return nil
	}
}

// printHeader displays the run configuration
func printHeader(cfg Config, tasks, workers int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()

	fmt.Fprintln(cfg.Stderr, cyan("termbar"))
	fmt.Fprintf(cfg.Stderr, "Tasks:       %s\n", magenta(tasks))
	fmt.Fprintf(cfg.Stderr, "Workers:     %d\n", workers)
	fmt.Fprintf(cfg.Stderr, "Delay:       %s\n", cfg.Delay)
	if cfg.Width > 0 {
		fmt.Fprintf(cfg.Stderr, "Width:       %d columns\n", cfg.Width)
	}
	fmt.Fprintln(cfg.Stderr, "")
}

// printSummary displays the task results
func printSummary(cfg Config, results []runner.Result) {
	var successes, failures int
	var failed []string
	for _, r := range results {
		if r.Error != nil {
			failures++
			failed = append(failed, fmt.Sprintf("  - %v", r.Error))
		} else {
			successes++
		}
	}

	if failures > 0 {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(cfg.Stderr, "%s Completed with errors: %d succeeded, %d failed\n", red("⚠"), successes, failures)
		if cfg.Verbose {
			fmt.Fprintln(cfg.Stderr, "Failed tasks:")
			for _, f := range failed {
				fmt.Fprintln(cfg.Stderr, f)
			}
		}
	}
}
