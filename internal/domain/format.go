package domain

import (
	"fmt"
	"strconv"
)

// Ordinal renders n with its English suffix: 1st, 2nd, 3rd, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	if r := n % 100; r < 11 || r > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatPuzzleDate renders d for humans, e.g. "14th Jan (Wed)".
func FormatPuzzleDate(d PuzzleDate) string {
	return fmt.Sprintf("%s %s (%s)", Ordinal(d.Day), d.Month.String()[:3], d.Weekday().String()[:3])
}
