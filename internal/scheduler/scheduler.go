package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/streak-bot/internal/bot"
	"github.com/ykvlv/streak-bot/internal/domain"
	"github.com/ykvlv/streak-bot/internal/store"
)

// Sender is a minimal interface the scheduler needs to send a text message.
// whatsapp.Client implements it.
type Sender interface {
	SendMessage(ctx context.Context, to, text string) error
}

// Scheduler runs the daily check at the cycle's check time.
type Scheduler struct {
	repo     store.Repo
	settings *store.Settings
	cycle    *domain.Cycle
	clock    domain.Clock
	roster   domain.Roster
	sender   Sender
	texts    bot.Texts
	log      *zap.Logger

	storeTimeout time.Duration
	sendTimeout  time.Duration

	// after is swapped in tests.
	after func(d time.Duration) <-chan time.Time
}

// New creates a new Scheduler.
func New(
	repo store.Repo,
	cycle *domain.Cycle,
	clock domain.Clock,
	roster domain.Roster,
	sender Sender,
	texts bot.Texts,
	log *zap.Logger,
) *Scheduler {
	return &Scheduler{
		repo:         repo,
		settings:     store.NewSettings(repo),
		cycle:        cycle,
		clock:        clock,
		roster:       roster,
		sender:       sender,
		texts:        texts,
		log:          log,
		storeTimeout: 5 * time.Second,
		sendTimeout:  10 * time.Second,
		after:        time.After,
	}
}

// WithTimeouts overrides the per-operation store and send timeouts.
func (s *Scheduler) WithTimeouts(storeTimeout, sendTimeout time.Duration) *Scheduler {
	if storeTimeout > 0 {
		s.storeTimeout = storeTimeout
	}
	if sendTimeout > 0 {
		s.sendTimeout = sendTimeout
	}
	return s
}

// Run fires DailyCheck at every check instant until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.clock.Now()
		next := s.cycle.NextCheck(now)
		s.log.Info("next daily check scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-s.after(next.Sub(now)):
			s.DailyCheck(ctx)
		}
	}
}

// DailyCheck reminds both participants when nobody played yesterday's puzzle.
// Running it twice for the same day only repeats the reminder.
func (s *Scheduler) DailyCheck(ctx context.Context) {
	now := s.clock.Now()

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	paused, err := s.settings.IsPaused(sctx, now)
	if err != nil {
		s.log.Error("daily check: read pause failed", zap.Error(err))
		return
	}
	if paused {
		s.log.Info("bot paused, daily check skipped")
		return
	}

	pd := s.cycle.CheckPuzzleDate(now)
	log := s.log.With(zap.Stringer("puzzle_date", pd))

	played, err := s.repo.HasAnyonePlayed(sctx, pd)
	if err != nil {
		log.Error("daily check: play lookup failed", zap.Error(err))
		return
	}
	if played {
		log.Info("daily check: at least one played")
		return
	}

	msg := s.texts.Reminder(pd)
	for _, p := range s.roster.All() {
		to := s.roster.ID(p)
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		err := s.sender.SendMessage(sendCtx, to, msg)
		cancel()
		if err != nil {
			log.Error("reminder send failed", zap.Error(err), zap.String("to", to))
			continue
		}
	}
	log.Info("daily check: reminder sent to both")
}
