package flow

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits s into lines of at most width runes using greedy word
// wrapping. Words never break mid-word, so a single word longer than width
// occupies its own over-long line. Runs of whitespace collapse to single
// spaces. Whitespace-only input yields no lines; width <= 0 disables
// wrapping and yields one normalized line.
func Wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	cur := words[0]
	n := utf8.RuneCountInString(cur)
	for _, w := range words[1:] {
		wn := utf8.RuneCountInString(w)
		if n+1+wn <= width {
			cur += " " + w
			n += 1 + wn
			continue
		}
		lines = append(lines, cur)
		cur, n = w, wn
	}
	return append(lines, cur)
}
