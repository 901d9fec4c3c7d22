package progress

import "strings"

const ellipsis = "..."

// Fit returns s truncated or padded to exactly n columns. Long strings
// end in "..."; short ones are padded on the right with spaces.
func Fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		if n <= len(ellipsis) {
			return s[:n]
		}
		return s[:n-len(ellipsis)] + ellipsis
	}
	return s + strings.Repeat(" ", n-len(s))
}
