package store

import (
	"context"

	"github.com/ykvlv/streak-bot/internal/domain"
)

// Repo defines storage operations for the play log and bot settings.
type Repo interface {
	RecordPlay(ctx context.Context, user string, pd domain.PuzzleDate) error
	HasPlayed(ctx context.Context, user string, pd domain.PuzzleDate) (bool, error)
	HasAnyonePlayed(ctx context.Context, pd domain.PuzzleDate) (bool, error)
	ClearPlays(ctx context.Context) (int64, error)

	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	SetSettings(ctx context.Context, kv map[string]string) error

	Close() error
}
