package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ykvlv/streak-bot/internal/bot"
	"github.com/ykvlv/streak-bot/internal/config"
	"github.com/ykvlv/streak-bot/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "secret",
		TwilioFrom:       "whatsapp:+14155238886",
		User1:            "whatsapp:+911111111111",
		User2:            "whatsapp:+912222222222",
		User1Name:        "Alvin",
		User2Name:        "Ananya",
		Timezone:         "Asia/Kolkata",
		DropHour:         13,
		DropMinute:       30,
		CheckHour:        10,
		BotName:          "Test Bot",
		StoreTimeout:     time.Second,
		SendTimeout:      time.Second,
	}
}

func TestRoutes(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	handler := bot.NewHandler(bot.Options{
		Repo:   testutil.NewMemRepo(),
		Cycle:  a.cycle,
		Clock:  a.clock,
		Roster: a.roster,
		Sender: &testutil.RecordingSender{},
		Texts:  a.texts,
	})
	srv := httptest.NewServer(a.routes(handler))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/whatsapp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	form := url.Values{"From": {"whatsapp:+19999999999"}, "Body": {"!reset"}}
	resp, err = http.Post(srv.URL+"/whatsapp", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_RejectsBadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Nowhere/Land"
	_, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
}
