package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/streak-bot/internal/domain"
	"github.com/ykvlv/streak-bot/internal/store"
)

// Recognized commands. Matching is case-insensitive on the whole message.
const (
	cmdStatus    = "!status"
	cmdPause     = "!pause"
	cmdResume    = "!resume"
	cmdReset     = "!reset"
	cmdPlayed    = "!played"
	cmdAllPlayed = "!allplayed"
)

// Sender delivers a message to a participant outside the reply channel.
type Sender interface {
	SendMessage(ctx context.Context, to, text string) error
}

// Options configures a Handler.
type Options struct {
	Repo         store.Repo
	Cycle        *domain.Cycle
	Clock        domain.Clock
	Roster       domain.Roster
	Sender       Sender
	Texts        Texts
	Log          *zap.Logger
	StoreTimeout time.Duration
	SendTimeout  time.Duration
}

// Handler turns inbound commands into replies and side effects.
type Handler struct {
	repo         store.Repo
	settings     *store.Settings
	cycle        *domain.Cycle
	clock        domain.Clock
	roster       domain.Roster
	sender       Sender
	texts        Texts
	log          *zap.Logger
	storeTimeout time.Duration
	sendTimeout  time.Duration

	// serializes check-then-record on the play log
	mu sync.Mutex
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		repo:         opts.Repo,
		settings:     store.NewSettings(opts.Repo),
		cycle:        opts.Cycle,
		clock:        opts.Clock,
		roster:       opts.Roster,
		sender:       opts.Sender,
		texts:        opts.Texts,
		log:          opts.Log,
		storeTimeout: opts.StoreTimeout,
		sendTimeout:  opts.SendTimeout,
	}
	if h.clock == nil {
		h.clock = domain.SystemClock{Loc: h.cycle.Location()}
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.storeTimeout <= 0 {
		h.storeTimeout = 5 * time.Second
	}
	if h.sendTimeout <= 0 {
		h.sendTimeout = 10 * time.Second
	}
	return h
}

// Handle routes one inbound message and returns the reply for the sender.
// It never fails: errors are logged and answered with a canned reply.
func (h *Handler) Handle(ctx context.Context, from, body string) string {
	p, ok := h.roster.Lookup(from)
	if !ok {
		h.log.Warn("access denied", zap.String("from", from))
		return h.texts.AccessDenied()
	}

	cmd := strings.ToLower(strings.TrimSpace(body))
	log := h.log.With(zap.String("user", h.roster.Name(p)), zap.String("cmd", cmd))

	ctx, cancel := context.WithTimeout(ctx, h.storeTimeout)
	defer cancel()

	var (
		reply string
		err   error
	)
	switch cmd {
	case cmdStatus:
		reply, err = h.handleStatus(ctx)
	case cmdPause:
		reply, err = h.handlePause(ctx)
	case cmdResume:
		reply, err = h.handleResume(ctx)
	case cmdReset:
		reply, err = h.handleReset(ctx, log)
	case cmdPlayed:
		reply, err = h.handlePlayed(ctx, log, p, true)
	case cmdAllPlayed:
		reply, err = h.handlePlayed(ctx, log, p, false)
	default:
		log.Debug("unrecognized message")
		return h.texts.Help()
	}
	if err != nil {
		log.Error("command failed", zap.Error(err))
		return h.texts.Failure()
	}
	log.Info("command handled")
	return reply
}
