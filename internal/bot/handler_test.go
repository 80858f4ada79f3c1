package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykvlv/streak-bot/internal/domain"
	"github.com/ykvlv/streak-bot/internal/store"
	"github.com/ykvlv/streak-bot/internal/testutil"
)

const (
	alvin  = "whatsapp:+911111111111"
	ananya = "whatsapp:+912222222222"
)

type fixture struct {
	h      *Handler
	repo   *testutil.MemRepo
	sender *testutil.RecordingSender
	clock  *testutil.ManualClock
	loc    *time.Location
	texts  Texts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	f := &fixture{
		repo:   testutil.NewMemRepo(),
		sender: &testutil.RecordingSender{},
		clock:  testutil.NewManualClock(time.Date(2026, time.January, 16, 9, 59, 0, 0, loc)),
		loc:    loc,
		texts:  NewTexts("Test Bot"),
	}
	f.h = NewHandler(Options{
		Repo:   f.repo,
		Cycle:  domain.NewCycle(domain.TimeOfDay{Hour: 13, Minute: 30}, domain.TimeOfDay{Hour: 10}, loc),
		Clock:  f.clock,
		Roster: domain.NewRoster(domain.Member{ID: alvin, Name: "Alvin"}, domain.Member{ID: ananya, Name: "Ananya"}),
		Sender: f.sender,
		Texts:  f.texts,
	})
	return f
}

func (f *fixture) at(d, hh, mm int) {
	f.clock.Set(time.Date(2026, time.January, d, hh, mm, 0, 0, f.loc))
}

func (f *fixture) send(from, body string) string {
	return f.h.Handle(context.Background(), from, body)
}

func TestHandle_PlayedEarlyMorningCountsForPreviousDrop(t *testing.T) {
	f := newFixture(t)
	f.at(16, 9, 59)

	reply := f.send(alvin, "!played")
	assert.Equal(t, "✅ Noted! I informed the other person for: 15th Jan (Thu).", reply)

	plays := f.repo.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, alvin, plays[0].User)
	assert.Equal(t, "15-01-2026", plays[0].PuzzleDate.Key())

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, ananya, sent[0].To)
	assert.Contains(t, sent[0].Text, "Alvin has completed LinkedIn Games for: 15th Jan (Thu).")
}

func TestHandle_PlayedAfterDropUsesNewCycle(t *testing.T) {
	f := newFixture(t)
	f.at(16, 13, 31)

	f.send(ananya, "!played")

	plays := f.repo.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "16-01-2026", plays[0].PuzzleDate.Key())
	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, alvin, sent[0].To)
	assert.Contains(t, sent[0].Text, "Ananya has completed")
}

func TestHandle_PlayedIsIdempotent(t *testing.T) {
	f := newFixture(t)

	f.send(alvin, "!played")
	reply := f.send(alvin, "!PLAYED")

	assert.Equal(t, "✅ Already recorded for: 15th Jan (Thu).", reply)
	assert.Len(t, f.repo.Plays(), 1)
	assert.Len(t, f.sender.Sent(), 1)
}

func TestHandle_AllPlayedRecordsSenderOnlyWithoutNotifying(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "✅ Noted!", f.send(alvin, "!allplayed"))
	assert.Equal(t, "✅ Noted!", f.send(alvin, "!allplayed"))

	plays := f.repo.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, alvin, plays[0].User)
	assert.Empty(t, f.sender.Sent())

	// a later !played for the same cycle is already recorded
	assert.Contains(t, f.send(alvin, "!played"), "Already recorded")
	assert.Empty(t, f.sender.Sent())
}

func TestHandle_PauseGatesPlayReports(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, f.texts.PausedIndefinitely(), f.send(alvin, "!pause"))
	assert.Equal(t, f.texts.Paused(), f.send(ananya, "!played"))
	assert.Equal(t, f.texts.Paused(), f.send(ananya, "!allplayed"))
	assert.Empty(t, f.repo.Plays())
	assert.Empty(t, f.sender.Sent())

	// administrative commands still work while paused
	assert.Contains(t, f.send(ananya, "!status"), "⏸️ Bot paused!")
	assert.Equal(t, f.texts.ResetDone(), f.send(ananya, "!reset"))

	assert.Equal(t, f.texts.Resumed(), f.send(alvin, "!resume"))
	assert.Contains(t, f.send(ananya, "!played"), "I informed the other person")
	assert.Len(t, f.repo.Plays(), 1)
}

func TestHandle_Status(t *testing.T) {
	f := newFixture(t)
	f.at(16, 9, 59)

	reply := f.send(alvin, "  !Status ")
	assert.Equal(t, "✅ Bot active!\n\n"+
		"📍 LinkedIn Games running on: 15th Jan (Thu)\n"+
		"📍 Today's Date: 16th Jan (Fri)"+
		"\n\n ⭐ Test Bot", reply)
}

func TestHandle_Reset(t *testing.T) {
	f := newFixture(t)
	f.send(alvin, "!played")
	require.Len(t, f.repo.Plays(), 1)

	assert.Equal(t, f.texts.ResetDone(), f.send(ananya, "!reset"))
	assert.Empty(t, f.repo.Plays())

	// after a reset the same cycle can be reported again
	assert.Contains(t, f.send(alvin, "!played"), "I informed the other person")
}

func TestHandle_UnauthorizedSender(t *testing.T) {
	f := newFixture(t)
	f.send(alvin, "!played")

	for _, cmd := range []string{"!reset", "!pause", "!played", "!status"} {
		assert.Equal(t, f.texts.AccessDenied(), f.send("whatsapp:+10000000000", cmd))
	}

	assert.Len(t, f.repo.Plays(), 1)
	paused, _, err := f.repo.GetSetting(context.Background(), store.KeyPaused)
	require.NoError(t, err)
	assert.Equal(t, "0", paused)
}

func TestHandle_UnknownCommandsGetHelp(t *testing.T) {
	f := newFixture(t)
	for _, body := range []string{"", "hello", "!played now", "!statu", "played"} {
		assert.Equal(t, f.texts.Help(), f.send(alvin, body), body)
	}
	assert.Empty(t, f.repo.Plays())
}

func TestHandle_StorageFailureGivesGenericReply(t *testing.T) {
	f := newFixture(t)
	f.repo.Fail = true

	for _, cmd := range []string{"!status", "!pause", "!resume", "!reset", "!played", "!allplayed"} {
		reply := f.send(alvin, cmd)
		assert.Equal(t, f.texts.Failure(), reply, cmd)
		assert.NotContains(t, reply, testutil.ErrInjected.Error())
	}
	assert.Empty(t, f.sender.Sent())
}

func TestHandle_DeliveryFailureKeepsRecord(t *testing.T) {
	f := newFixture(t)
	f.sender.Err = errors.New("twilio down")

	assert.Contains(t, f.send(alvin, "!played"), "I informed the other person")
	assert.Len(t, f.repo.Plays(), 1)
	assert.Len(t, f.sender.Sent(), 1)
}

func TestHandle_ConcurrentPlayedRecordsOnce(t *testing.T) {
	f := newFixture(t)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			f.send(alvin, "!played")
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Len(t, f.repo.Plays(), 1)
	assert.Len(t, f.sender.Sent(), 1)
}
