package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/streak-bot/internal/bot"
	"github.com/ykvlv/streak-bot/internal/config"
	"github.com/ykvlv/streak-bot/internal/domain"
	"github.com/ykvlv/streak-bot/internal/scheduler"
	"github.com/ykvlv/streak-bot/internal/store"
	"github.com/ykvlv/streak-bot/internal/whatsapp"
)

type App struct {
	cfg    config.Config
	log    *zap.Logger
	cycle  *domain.Cycle
	clock  domain.Clock
	roster domain.Roster
	texts  bot.Texts
	client *whatsapp.Client
	repo   store.Repo
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	cycle, err := cfg.Cycle()
	if err != nil {
		return nil, err
	}
	if !cycle.CheckBeforeDrop() {
		log.Warn("check time is not earlier than drop time; the daily check may audit an unexpected cycle",
			zap.Stringer("check", cycle.CheckTime()),
			zap.Stringer("drop", cycle.DropTime()),
		)
	}

	client := whatsapp.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.SendTimeout, log)

	return &App{
		cfg:    cfg,
		log:    log,
		cycle:  cycle,
		clock:  domain.SystemClock{Loc: cycle.Location()},
		roster: cfg.Roster(),
		texts:  bot.NewTexts(cfg.BotName),
		client: client,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting streak-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("tz", a.cycle.Location().String()),
		zap.Stringer("drop", a.cycle.DropTime()),
		zap.Stringer("check", a.cycle.CheckTime()),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	defer func() { _ = a.repo.Close() }()
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	handler := bot.NewHandler(bot.Options{
		Repo:         repo,
		Cycle:        a.cycle,
		Clock:        a.clock,
		Roster:       a.roster,
		Sender:       a.client,
		Texts:        a.texts,
		Log:          a.log.Named("bot"),
		StoreTimeout: a.cfg.StoreTimeout,
		SendTimeout:  a.cfg.SendTimeout,
	})
	sched := scheduler.New(repo, a.cycle, a.clock, a.roster, a.client, a.texts, a.log.Named("scheduler")).
		WithTimeouts(a.cfg.StoreTimeout, a.cfg.SendTimeout)

	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.routes(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: a.cfg.StoreTimeout + a.cfg.SendTimeout + 5*time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		sched.Run(ctx)
	}()

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-srvErr:
		a.log.Error("http server error", zap.Error(err))
		runErr = err
		stop()
	}

	// Create a short-lived shutdown context and cancel it immediately after use.
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	<-schedDone
	return runErr
}

func (a *App) routes(handler *bot.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("POST /whatsapp", whatsapp.NewWebhook(handler, a.log.Named("webhook")))
	return mux
}
