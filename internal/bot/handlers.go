package bot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ykvlv/streak-bot/internal/domain"
)

func (h *Handler) handleStatus(ctx context.Context) (string, error) {
	now := h.clock.Now()
	paused, err := h.settings.IsPaused(ctx, now)
	if err != nil {
		return "", fmt.Errorf("read pause: %w", err)
	}
	return h.texts.Status(paused, h.cycle.CurrentPuzzleDate(now), h.cycle.Today(now)), nil
}

func (h *Handler) handlePause(ctx context.Context) (string, error) {
	if err := h.settings.Pause(ctx); err != nil {
		return "", fmt.Errorf("pause: %w", err)
	}
	return h.texts.PausedIndefinitely(), nil
}

func (h *Handler) handleResume(ctx context.Context) (string, error) {
	if err := h.settings.Resume(ctx); err != nil {
		return "", fmt.Errorf("resume: %w", err)
	}
	return h.texts.Resumed(), nil
}

func (h *Handler) handleReset(ctx context.Context, log *zap.Logger) (string, error) {
	h.mu.Lock()
	n, err := h.repo.ClearPlays(ctx)
	h.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("clear plays: %w", err)
	}
	log.Info("play log cleared", zap.Int64("deleted", n))
	return h.texts.ResetDone(), nil
}

// handlePlayed records a play for p in the current cycle. With notify set,
// a fresh record is announced to the other participant.
func (h *Handler) handlePlayed(ctx context.Context, log *zap.Logger, p domain.Participant, notify bool) (string, error) {
	now := h.clock.Now()
	paused, err := h.settings.IsPaused(ctx, now)
	if err != nil {
		return "", fmt.Errorf("read pause: %w", err)
	}
	if paused {
		return h.texts.Paused(), nil
	}
	if !h.cycle.InPlayWindow(now) {
		return h.texts.TooLate(), nil
	}

	pd := h.cycle.CurrentPuzzleDate(now)
	recorded, err := h.recordOnce(ctx, h.roster.ID(p), pd)
	if err != nil {
		return "", err
	}
	log = log.With(zap.Stringer("puzzle_date", pd), zap.Bool("recorded", recorded))

	if !notify {
		return h.texts.Noted(), nil
	}
	if !recorded {
		return h.texts.AlreadyRecorded(pd), nil
	}

	other := p.Other()
	h.send(ctx, log, h.roster.ID(other), h.texts.PlayedNotice(h.roster.Name(p), pd))
	return h.texts.PlayedAck(pd), nil
}

// recordOnce stores a play unless one exists for (user, pd).
func (h *Handler) recordOnce(ctx context.Context, user string, pd domain.PuzzleDate) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	played, err := h.repo.HasPlayed(ctx, user, pd)
	if err != nil {
		return false, fmt.Errorf("has played: %w", err)
	}
	if played {
		return false, nil
	}
	if err := h.repo.RecordPlay(ctx, user, pd); err != nil {
		return false, fmt.Errorf("record play: %w", err)
	}
	return true, nil
}

// send is best-effort: a failed notification does not undo the record.
func (h *Handler) send(ctx context.Context, log *zap.Logger, to, text string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.sendTimeout)
	defer cancel()
	if err := h.sender.SendMessage(ctx, to, text); err != nil {
		log.Error("notification failed", zap.String("to", to), zap.Error(err))
		return
	}
	log.Info("notification sent", zap.String("to", to))
}
