package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
)

// WidthProvider reports the current terminal width in columns.
type WidthProvider interface {
	Width() (int, error)
}

// Sink receives rendered lines.
type Sink interface {
	// WriteInPlace overwrites the current line with line.
	WriteInPlace(line string) error
	// WriteLine overwrites the current line with line and moves to the next one.
	WriteLine(line string) error
}

// Options configures a Reporter.
type Options struct {
	// Width is queried before every frame so resizes are picked up.
	Width WidthProvider

	// Sink receives every frame.
	Sink Sink

	// Quiet suppresses all output when true
	Quiet bool

	// Verbose writes each Increment message on its own line when true
	Verbose bool

	// Throttle is the minimum delay between frames (default 100ms).
	// The final frame is always drawn.
	Throttle time.Duration

	// Noun names the counted items in the completion line (default "items").
	Noun string
}

// Reporter draws a State to a Sink as it advances.
// It is safe for concurrent use from multiple goroutines.
type Reporter struct {
	width    WidthProvider
	sink     Sink
	quiet    bool
	verbose  bool
	throttle time.Duration
	noun     string
	now      func() time.Time

	// State (protected by mutex)
	mu        sync.Mutex
	state     *State
	startTime time.Time
	lastPrint time.Time
}

// NewReporter creates a Reporter that owns state from now on.
func NewReporter(state *State, opts Options) *Reporter {
	if opts.Throttle == 0 {
		opts.Throttle = 100 * time.Millisecond
	}
	if opts.Noun == "" {
		opts.Noun = "items"
	}
	return &Reporter{
		width:    opts.Width,
		sink:     opts.Sink,
		quiet:    opts.Quiet,
		verbose:  opts.Verbose,
		throttle: opts.Throttle,
		noun:     opts.Noun,
		now:      time.Now,
		state:    state,
	}
}

// Start resets the clock and draws the first frame.
func (r *Reporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.startTime = r.now()
	if r.quiet {
		return nil
	}
	return r.draw()
}

// Increment advances progress by one step.
// In verbose mode a non-empty message is printed above the bar.
func (r *Reporter) Increment(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.state.AddCurrent(1); err != nil {
		return err
	}
	if r.quiet {
		return nil
	}

	if r.verbose && message != "" {
		w, err := r.width.Width()
		if err != nil {
			return err
		}
		step := stepText(r.state.current, r.state.max)
		if err := r.sink.WriteLine(Fit(fmt.Sprintf("[%s] %s", step, message), w)); err != nil {
			return err
		}
		return r.draw()
	}

	// Rate limit updates to avoid flickering
	if r.now().Sub(r.lastPrint) < r.throttle && !r.state.Done() {
		return nil
	}
	return r.draw()
}

// Current returns the number of completed steps.
func (r *Reporter) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.current
}

// Finish replaces the bar with a completion line.
func (r *Reporter) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quiet {
		return nil
	}
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	text := fmt.Sprintf("Completed %d/%d %s in %s",
		r.state.current, r.state.max, r.noun, formatDuration(r.now().Sub(r.startTime)))
	return r.status(green("✓"), text)
}

// Error replaces the bar with an error line.
func (r *Reporter) Error(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quiet {
		return nil
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	return r.status(red("✗"), "Error: "+message)
}

// status writes a one-column glyph followed by text padded to the terminal width.
func (r *Reporter) status(glyph, text string) error {
	w, err := r.width.Width()
	if err != nil {
		return err
	}
	return r.sink.WriteLine(glyph + " " + Fit(text, w-2))
}

// draw renders the state at the current width. Callers hold r.mu.
func (r *Reporter) draw() error {
	w, err := r.width.Width()
	if err != nil {
		return err
	}
	line, err := Render(r.state, w)
	if err != nil {
		return err
	}
	r.lastPrint = r.now()
	return r.sink.WriteInPlace(line)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds = seconds % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
