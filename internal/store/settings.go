package store

import (
	"context"
	"strings"
	"time"
)

// Settings reads and writes the bot-wide pause state. Values are re-read from
// the repo on every call so administrative changes are seen immediately.
type Settings struct {
	repo Repo
}

func NewSettings(repo Repo) *Settings {
	return &Settings{repo: repo}
}

// IsPaused reports whether the bot is paused at now.
//
// pause_until is a legacy field: Pause and Resume always clear it, so a pause
// is indefinite. When a parseable deadline is present and has passed, the
// pause is lifted. An unparseable value keeps the bot paused.
func (s *Settings) IsPaused(ctx context.Context, now time.Time) (bool, error) {
	v, _, err := s.repo.GetSetting(ctx, KeyPaused)
	if err != nil {
		return false, err
	}
	if v != "1" {
		return false, nil
	}

	until, _, err := s.repo.GetSetting(ctx, KeyPauseUntil)
	if err != nil {
		return true, err
	}
	until = strings.TrimSpace(until)
	if until == "" {
		return true, nil
	}
	deadline, err := time.Parse(time.RFC3339, until)
	if err != nil {
		return true, nil
	}
	if now.After(deadline) {
		if err := s.Resume(ctx); err != nil {
			return true, err
		}
		return false, nil
	}
	return true, nil
}

// Pause pauses the bot until Resume is called.
func (s *Settings) Pause(ctx context.Context) error {
	return s.repo.SetSettings(ctx, map[string]string{KeyPaused: "1", KeyPauseUntil: ""})
}

func (s *Settings) Resume(ctx context.Context) error {
	return s.repo.SetSettings(ctx, map[string]string{KeyPaused: "0", KeyPauseUntil: ""})
}
