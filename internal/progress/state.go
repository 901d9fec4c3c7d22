// Package progress renders single-line terminal progress bars.
//
// A State holds the current/max pair and every display setting; Render
// turns a State into one line of exactly the terminal width. Reporter
// ties the two to a width provider and an output sink for animated use.
package progress

import (
	"strconv"
	"strings"
)

// State holds progress values and display configuration.
// Every setter validates its argument and leaves the State unchanged on error.
// A State is not safe for concurrent mutation; Reporter serializes access.
type State struct {
	current int
	max     int

	showPercent    Placement
	showStep       Placement
	showRingCursor Placement

	filledChar byte
	emptyChar  byte
	prefix     string
	suffix     string

	frames    []byte
	frequency int
	reverse   bool
}

// DefaultFrames is the ring cursor animation used until SetRingCursorFrames is called.
var DefaultFrames = []string{"|", "/", "-", `\`}

// New creates a State with default appearance.
func New(current, max int) (*State, error) {
	if err := checkProgress(current, max); err != nil {
		return nil, err
	}
	s := &State{
		current:        current,
		max:            max,
		showPercent:    BeforeSuffix,
		showStep:       DontShow,
		showRingCursor: DontShow,
		filledChar:     '#',
		emptyChar:      ' ',
		frequency:      1,
	}
	for _, f := range DefaultFrames {
		s.frames = append(s.frames, f[0])
	}
	return s, nil
}

// Parse creates a State from textual current and max values.
func Parse(current, max string) (*State, error) {
	c, err := parseInt("current", current)
	if err != nil {
		return nil, err
	}
	m, err := parseInt("max", max)
	if err != nil {
		return nil, err
	}
	return New(c, m)
}

func parseInt(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, newError(KindMissingArgument, field, s, "value required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, newError(KindArgumentType, field, s, "not an integer")
	}
	return n, nil
}

func checkProgress(current, max int) error {
	switch {
	case max <= 0:
		return newError(KindInvalidProgress, "max", max, "must be positive")
	case current < 0:
		return newError(KindInvalidProgress, "current", current, "must not be negative")
	case current > max:
		return newError(KindInvalidProgress, "current", current, "exceeds max "+strconv.Itoa(max))
	}
	return nil
}

// Current returns the completed amount.
func (s *State) Current() int { return s.current }

// Max returns the total amount.
func (s *State) Max() int { return s.max }

// ShowPercent returns where the percentage is drawn.
func (s *State) ShowPercent() Placement { return s.showPercent }

// ShowStep returns where the "current / max" counter is drawn.
func (s *State) ShowStep() Placement { return s.showStep }

// ShowRingCursor returns where the spinner is drawn.
func (s *State) ShowRingCursor() Placement { return s.showRingCursor }

// FilledChar returns the character for the completed part of the bar.
func (s *State) FilledChar() byte { return s.filledChar }

// EmptyChar returns the character for the remaining part of the bar.
func (s *State) EmptyChar() byte { return s.emptyChar }

// Prefix returns the text drawn left of the bar.
func (s *State) Prefix() string { return s.prefix }

// Suffix returns the text drawn right of the bar.
func (s *State) Suffix() string { return s.suffix }

// RingCursorFrequency returns how many steps each spinner frame is held for.
func (s *State) RingCursorFrequency() int { return s.frequency }

// RingCursorReverse reports whether the spinner frames run backwards.
func (s *State) RingCursorReverse() bool { return s.reverse }

// Done reports whether current has reached max.
func (s *State) Done() bool { return s.current == s.max }

// RingCursorFrames returns a copy of the spinner frames.
func (s *State) RingCursorFrames() []string { return splitFrames(s.frames) }

func splitFrames(b []byte) []string {
	out := make([]string, len(b))
	for i, c := range b {
		out[i] = string(c)
	}
	return out
}

// SetCurrent replaces the current value.
func (s *State) SetCurrent(n int) error {
	if err := checkProgress(n, s.max); err != nil {
		return err
	}
	s.current = n
	return nil
}

// AddCurrent advances current by delta, which may be negative.
// The result is validated against max like any other mutation.
func (s *State) AddCurrent(delta int) error {
	return s.SetCurrent(s.current + delta)
}

// SetMax replaces the maximum. It fails if current would exceed it.
func (s *State) SetMax(n int) error {
	if err := checkProgress(s.current, n); err != nil {
		return err
	}
	s.max = n
	return nil
}

// SetShowPercent places the percentage. Every defined Placement is accepted;
// a clash with the step counter is reported by Render.
func (s *State) SetShowPercent(p Placement) error {
	if !p.valid() {
		return newError(KindInvalidAppearance, "showPercent", int(p), "unknown placement")
	}
	s.showPercent = p
	return nil
}

// SetShowStep places the step counter.
func (s *State) SetShowStep(p Placement) error {
	if !p.valid() {
		return newError(KindInvalidAppearance, "showStep", int(p), "unknown placement")
	}
	s.showStep = p
	return nil
}

// SetShowRingCursor accepts only DontShow, BeforePrefix and AfterSuffix.
func (s *State) SetShowRingCursor(p Placement) error {
	switch p {
	case DontShow, BeforePrefix, AfterSuffix:
		s.showRingCursor = p
		return nil
	}
	return newError(KindInvalidAppearance, "showRingCursor", p, "must be dont-show, before-prefix or after-suffix")
}

// SetFilledChar sets the completed-part character. c must be one printable ASCII character.
func (s *State) SetFilledChar(c string) error {
	if !isGlyph(c) {
		return newError(KindInvalidCharacter, "filledChar", strconv.Quote(c), "must be one printable ASCII character")
	}
	s.filledChar = c[0]
	return nil
}

// SetEmptyChar sets the remaining-part character. c must be one printable ASCII character.
func (s *State) SetEmptyChar(c string) error {
	if !isGlyph(c) {
		return newError(KindInvalidCharacter, "emptyChar", strconv.Quote(c), "must be one printable ASCII character")
	}
	s.emptyChar = c[0]
	return nil
}

// SetPrefix sets the printable ASCII text drawn left of the bar.
func (s *State) SetPrefix(text string) error {
	if !isPrintableASCII(text) {
		return newError(KindInvalidCharacter, "prefix", strconv.Quote(text), "must be printable ASCII")
	}
	s.prefix = text
	return nil
}

// SetSuffix sets the printable ASCII text drawn right of the bar.
func (s *State) SetSuffix(text string) error {
	if !isPrintableASCII(text) {
		return newError(KindInvalidCharacter, "suffix", strconv.Quote(text), "must be printable ASCII")
	}
	s.suffix = text
	return nil
}

// SetRingCursorFrames sets the spinner animation, one character per frame.
func (s *State) SetRingCursorFrames(frames []string) error {
	if len(frames) == 0 {
		return newError(KindInvalidValue, "ringCursorFrames", frames, "no frames")
	}
	b := make([]byte, len(frames))
	for i, f := range frames {
		if !isGlyph(f) {
			return newError(KindInvalidValue, "ringCursorFrames", strconv.Quote(f), "frame must be one printable ASCII character")
		}
		b[i] = f[0]
	}
	s.frames = b
	return nil
}

// SetRingCursorFrequency sets how many steps each frame is held for.
func (s *State) SetRingCursorFrequency(n int) error {
	if n <= 0 {
		return newError(KindInvalidValue, "ringCursorFrequency", n, "must be positive")
	}
	s.frequency = n
	return nil
}

// SetRingCursorReverse makes the spinner run its frames backwards.
func (s *State) SetRingCursorReverse(reverse bool) {
	s.reverse = reverse
}

func isGlyph(c string) bool {
	return len(c) == 1 && isPrintableASCII(c)
}

func isPrintableASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < 0x20 || text[i] > 0x7e {
			return false
		}
	}
	return true
}
