package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ykvlv/streak-bot/internal/domain"
	"github.com/ykvlv/streak-bot/internal/store"
)

// ErrInjected is returned by MemRepo when Fail is set.
var ErrInjected = errors.New("injected storage failure")

// MemRepo is an in-memory store.Repo for handler and scheduler tests.
//
// Thread-safety: all methods are safe for concurrent use.
type MemRepo struct {
	mu       sync.Mutex
	plays    []store.PlayRecord
	settings map[string]string
	nextID   int64

	// Fail makes every call return ErrInjected.
	Fail bool
}

// NewMemRepo returns a repo seeded like a fresh database.
func NewMemRepo() *MemRepo {
	return &MemRepo{settings: map[string]string{
		store.KeyPaused:     "0",
		store.KeyPauseUntil: "",
	}}
}

func (r *MemRepo) RecordPlay(_ context.Context, user string, pd domain.PuzzleDate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	r.nextID++
	r.plays = append(r.plays, store.PlayRecord{ID: r.nextID, User: user, PuzzleDate: pd, PlayedAt: time.Now().UTC()})
	return nil
}

func (r *MemRepo) HasPlayed(_ context.Context, user string, pd domain.PuzzleDate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return false, ErrInjected
	}
	for _, p := range r.plays {
		if p.User == user && p.PuzzleDate == pd {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemRepo) HasAnyonePlayed(_ context.Context, pd domain.PuzzleDate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return false, ErrInjected
	}
	for _, p := range r.plays {
		if p.PuzzleDate == pd {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemRepo) ClearPlays(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return 0, ErrInjected
	}
	n := int64(len(r.plays))
	r.plays = nil
	return n, nil
}

func (r *MemRepo) GetSetting(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return "", false, ErrInjected
	}
	v, ok := r.settings[key]
	return v, ok, nil
}

func (r *MemRepo) SetSetting(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	r.settings[key] = value
	return nil
}

func (r *MemRepo) SetSettings(_ context.Context, kv map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrInjected
	}
	for k, v := range kv {
		r.settings[k] = v
	}
	return nil
}

func (r *MemRepo) Close() error { return nil }

// Plays returns a copy of every stored record.
func (r *MemRepo) Plays() []store.PlayRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.PlayRecord(nil), r.plays...)
}

var _ store.Repo = (*MemRepo)(nil)
