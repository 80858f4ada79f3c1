package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPuzzleDate is returned when a stored puzzle date is not dd-mm-yyyy.
var ErrInvalidPuzzleDate = errors.New("invalid puzzle date")

const puzzleDateLayout = "02-01-2006"

// PuzzleDate identifies one daily play cycle. It carries no time of day and no
// location; it is derived from an instant by Cycle.
type PuzzleDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) PuzzleDate {
	y, m, d := t.Date()
	return PuzzleDate{Year: y, Month: m, Day: d}
}

// NewPuzzleDate builds a normalized date (e.g. Jan 32 becomes Feb 1).
func NewPuzzleDate(y int, m time.Month, d int) PuzzleDate {
	return DateOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParsePuzzleDate parses the dd-mm-yyyy storage form.
func ParsePuzzleDate(s string) (PuzzleDate, error) {
	t, err := time.Parse(puzzleDateLayout, s)
	if err != nil {
		return PuzzleDate{}, fmt.Errorf("%w: %q", ErrInvalidPuzzleDate, s)
	}
	return DateOf(t), nil
}

// AddDays shifts the date by n calendar days.
func (d PuzzleDate) AddDays(n int) PuzzleDate {
	return NewPuzzleDate(d.Year, d.Month, d.Day+n)
}

// At combines the date with a wall-clock time of day in loc.
func (d PuzzleDate) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

func (d PuzzleDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Key is the dd-mm-yyyy form used in the play log.
func (d PuzzleDate) Key() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

func (d PuzzleDate) String() string { return d.Key() }
