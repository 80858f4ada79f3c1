package domain

import "time"

// Clock is the single source of "now" for cycle decisions.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in a fixed location.
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
