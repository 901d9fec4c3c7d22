package progress

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// MinBarWidth is the narrowest bar, brackets excluded, that Render will draw.
const MinBarWidth = 5

// Render lays out s as a single line exactly width characters long.
// It does not modify s and has no side effects.
func Render(s *State, width int) (string, error) {
	l, err := newLayout(s)
	if err != nil {
		return "", err
	}
	before := l.beforeBar(s)
	after := l.afterBar(s)

	barWidth := width - len(before) - len(after) - 2
	if barWidth < MinBarWidth {
		return "", newError(KindInvalidSize, "barWidth", barWidth,
			fmt.Sprintf("terminal width %d leaves less than %d columns", width, MinBarWidth))
	}
	return l.line(s, before, after, barWidth)
}

// RenderBar lays out s with a bar of exactly barWidth characters between
// the brackets, ignoring the terminal width. The line is as long as the
// decorations make it.
func RenderBar(s *State, barWidth int) (string, error) {
	l, err := newLayout(s)
	if err != nil {
		return "", err
	}
	if barWidth < MinBarWidth {
		return "", newError(KindInvalidSize, "barWidth", barWidth,
			fmt.Sprintf("bar length must be at least %d", MinBarWidth))
	}
	return l.line(s, l.beforeBar(s), l.afterBar(s), barWidth)
}

// layout holds the text pieces of one render.
type layout struct {
	percent string
	step    string
	glyph   string
}

func newLayout(s *State) (layout, error) {
	if s.showPercent == s.showStep && s.showPercent != DontShow {
		return layout{}, newError(KindInvalidAppearance, "showStep", s.showStep, "percent and step share a placement")
	}
	if s.filledChar == s.emptyChar {
		return layout{}, newError(KindInvalidCharacter, "emptyChar", string(s.emptyChar), "same as filled character")
	}

	l := layout{
		percent: percentText(s.current, s.max) + "%",
		step:    stepText(s.current, s.max),
	}
	if s.showRingCursor != DontShow && !s.Done() {
		l.glyph = string(s.ringFrame())
	}
	return l, nil
}

// line fills a bar of barWidth columns, splices any in-bar text into it
// and wraps it in brackets between before and after.
func (l layout) line(s *State, before, after string, barWidth int) (string, error) {
	filled := filledWidth(barWidth, s.current, s.max)
	fill := make([]byte, barWidth)
	for i := range fill {
		if i < filled {
			fill[i] = s.filledChar
		} else {
			fill[i] = s.emptyChar
		}
	}

	var overlay string
	switch {
	case s.showStep == InBar:
		overlay = " " + l.step + " "
	case s.showPercent == InBar:
		overlay = " " + l.percent + " "
	}
	if overlay != "" {
		if len(overlay) > barWidth {
			return "", newError(KindInvalidSize, "barWidth", barWidth,
				fmt.Sprintf("in-bar text %q does not fit", overlay))
		}
		copy(fill[(barWidth-len(overlay))/2:], overlay)
	}

	var b strings.Builder
	b.Grow(len(before) + barWidth + 2 + len(after))
	b.WriteString(before)
	b.WriteByte('[')
	b.Write(fill)
	b.WriteByte(']')
	b.WriteString(after)
	return b.String(), nil
}

// beforeBar joins the pieces left of the bar with single spaces and
// ends with one space when anything is present.
func (l layout) beforeBar(s *State) string {
	var parts []string
	if s.showRingCursor == BeforePrefix && l.glyph != "" {
		parts = append(parts, l.glyph)
	}
	if s.showStep == BeforePrefix {
		parts = append(parts, l.step)
	}
	if s.showPercent == BeforePrefix {
		parts = append(parts, l.percent)
	}
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	if s.showStep == AfterPrefix {
		parts = append(parts, l.step)
	}
	if s.showPercent == AfterPrefix {
		parts = append(parts, l.percent)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

// afterBar mirrors beforeBar for the suffix side.
func (l layout) afterBar(s *State) string {
	var parts []string
	if s.showStep == BeforeSuffix {
		parts = append(parts, l.step)
	}
	if s.showPercent == BeforeSuffix {
		parts = append(parts, l.percent)
	}
	if s.suffix != "" {
		parts = append(parts, s.suffix)
	}
	if s.showStep == AfterSuffix {
		parts = append(parts, l.step)
	}
	if s.showPercent == AfterSuffix {
		parts = append(parts, l.percent)
	}
	if s.showRingCursor == AfterSuffix && l.glyph != "" {
		parts = append(parts, l.glyph)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// ringFrame returns the spinner glyph for the current step.
func (s *State) ringFrame() byte {
	i := (s.current / s.frequency) % len(s.frames)
	if s.reverse {
		i = len(s.frames) - 1 - i
	}
	return s.frames[i]
}

// percentText formats current/max as a percentage, 6 columns wide.
func percentText(current, max int) string {
	return fmt.Sprintf("%6.2f", float64(current)/float64(max)*100)
}

// stepText formats "current / max" with current right-aligned to the width of max.
func stepText(current, max int) string {
	return fmt.Sprintf("%*d / %d", len(strconv.Itoa(max)), current, max)
}

// filledWidth computes floor(barWidth*current/max) without overflowing.
func filledWidth(barWidth, current, max int) int {
	hi, lo := bits.Mul64(uint64(barWidth), uint64(current))
	q, _ := bits.Div64(hi, lo, uint64(max))
	return int(q)
}
