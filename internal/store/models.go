package store

import (
	"time"

	"github.com/ykvlv/streak-bot/internal/domain"
)

// Settings keys.
const (
	KeyPaused     = "paused"
	KeyPauseUntil = "pause_until" // legacy; always written empty
)

// PlayRecord is one row of the play log.
type PlayRecord struct {
	ID         int64
	User       string
	PuzzleDate domain.PuzzleDate
	PlayedAt   time.Time // UTC
}

func toUnix(t time.Time) int64 {
	return t.UTC().Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
