package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_PauseResume(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	s := NewSettings(repo)
	now := time.Now()

	paused, err := s.IsPaused(ctx, now)
	require.NoError(t, err)
	assert.False(t, paused)

	require.NoError(t, s.Pause(ctx))
	paused, err = s.IsPaused(ctx, now.Add(365*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, paused, "pause is indefinite")

	until, _, err := repo.GetSetting(ctx, KeyPauseUntil)
	require.NoError(t, err)
	assert.Empty(t, until)

	require.NoError(t, s.Resume(ctx))
	paused, err = s.IsPaused(ctx, now)
	require.NoError(t, err)
	assert.False(t, paused)
}

func TestSettings_LegacyDeadline(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	s := NewSettings(repo)
	deadline := time.Date(2026, time.January, 16, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SetSettings(ctx, map[string]string{
		KeyPaused:     "1",
		KeyPauseUntil: deadline.Format(time.RFC3339),
	}))

	paused, err := s.IsPaused(ctx, deadline.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, paused)

	paused, err = s.IsPaused(ctx, deadline.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, paused)

	v, _, err := repo.GetSetting(ctx, KeyPaused)
	require.NoError(t, err)
	assert.Equal(t, "0", v, "expired deadline clears the pause")
}

func TestSettings_MalformedDeadlineStaysPaused(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	s := NewSettings(repo)

	require.NoError(t, repo.SetSettings(ctx, map[string]string{
		KeyPaused:     "1",
		KeyPauseUntil: "next tuesday",
	}))

	paused, err := s.IsPaused(ctx, time.Now())
	require.NoError(t, err)
	assert.True(t, paused)
}
