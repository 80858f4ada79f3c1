package domain

import (
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock hour and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour 0..23 and minute 0..59.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errors.New("invalid hour")
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errors.New("invalid minute")
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Cycle maps instants to puzzle dates. A new puzzle drops every day at the
// drop time; the daily check runs at the check time and audits the previous
// day's drop. All wall-clock reasoning happens in loc.
type Cycle struct {
	drop  TimeOfDay
	check TimeOfDay
	loc   *time.Location
}

func NewCycle(drop, check TimeOfDay, loc *time.Location) *Cycle {
	if loc == nil {
		loc = time.UTC
	}
	return &Cycle{drop: drop, check: check, loc: loc}
}

func (c *Cycle) Location() *time.Location { return c.loc }
func (c *Cycle) DropTime() TimeOfDay      { return c.drop }
func (c *Cycle) CheckTime() TimeOfDay     { return c.check }

// CheckBeforeDrop reports whether the configuration satisfies the contract the
// daily check relies on: the check runs earlier in the day than the drop.
func (c *Cycle) CheckBeforeDrop() bool {
	return c.check.Minutes() < c.drop.Minutes()
}

// Today is the wall-clock date of now in the cycle's location.
func (c *Cycle) Today(now time.Time) PuzzleDate {
	return DateOf(now.In(c.loc))
}

// DropInstant is the moment the puzzle for pd becomes available.
func (c *Cycle) DropInstant(pd PuzzleDate) time.Time {
	return pd.At(c.drop, c.loc)
}

// CurrentPuzzleDate is today once today's puzzle has dropped, yesterday before.
func (c *Cycle) CurrentPuzzleDate(now time.Time) PuzzleDate {
	today := c.Today(now)
	if !now.Before(c.DropInstant(today)) {
		return today
	}
	return today.AddDays(-1)
}

// CheckPuzzleDate is the puzzle audited by the daily check: always yesterday.
func (c *Cycle) CheckPuzzleDate(now time.Time) PuzzleDate {
	return c.Today(now).AddDays(-1)
}

// PlayWindow returns [drop(pd), drop(pd+1)) for the current puzzle date.
func (c *Cycle) PlayWindow(now time.Time) (start, end time.Time) {
	pd := c.CurrentPuzzleDate(now)
	return c.DropInstant(pd), c.DropInstant(pd.AddDays(1))
}

// InPlayWindow reports whether a play report at now counts for the current cycle.
func (c *Cycle) InPlayWindow(now time.Time) bool {
	start, end := c.PlayWindow(now)
	return !now.Before(start) && now.Before(end)
}

// NextCheck returns the first check instant strictly after now.
func (c *Cycle) NextCheck(now time.Time) time.Time {
	today := c.Today(now)
	at := today.At(c.check, c.loc)
	if at.After(now) {
		return at
	}
	return today.AddDays(1).At(c.check, c.loc)
}
