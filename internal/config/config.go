package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ykvlv/streak-bot/internal/domain"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	TwilioFrom       string `envconfig:"TWILIO_WHATSAPP_FROM" required:"true"` // whatsapp:+14155238886

	User1     string `envconfig:"USER1" required:"true"`
	User2     string `envconfig:"USER2" required:"true"`
	User1Name string `envconfig:"USER1_NAME" default:"Alvin"`
	User2Name string `envconfig:"USER2_NAME" default:"Ananya"`

	Timezone    string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
	DropHour    int    `envconfig:"DROP_HOUR" default:"13"`
	DropMinute  int    `envconfig:"DROP_MINUTE" default:"30"`
	CheckHour   int    `envconfig:"CHECK_HOUR" default:"10"`
	CheckMinute int    `envconfig:"CHECK_MINUTE" default:"0"`

	BotName      string        `envconfig:"BOT_NAME" default:"Anlin Bot"`
	DBPath       string        `envconfig:"DB_PATH" default:"./data/bot.db"`
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":5000"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	LogFile      string        `envconfig:"LOG_FILE"`                 // empty: stdout only
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	SendTimeout  time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file, then environment variables into Config.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()
	return loadEnv()
}

func loadEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for name, v := range map[string]string{
		"TWILIO_ACCOUNT_SID":   c.TwilioAccountSID,
		"TWILIO_AUTH_TOKEN":    c.TwilioAuthToken,
		"TWILIO_WHATSAPP_FROM": c.TwilioFrom,
		"USER1":                c.User1,
		"USER2":                c.User2,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if c.User1 == c.User2 {
		return errors.New("USER1 and USER2 must differ")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	if _, err := domain.NewTimeOfDay(c.DropHour, c.DropMinute); err != nil {
		return fmt.Errorf("drop time: %w", err)
	}
	if _, err := domain.NewTimeOfDay(c.CheckHour, c.CheckMinute); err != nil {
		return fmt.Errorf("check time: %w", err)
	}
	return nil
}

// Location resolves Timezone as an IANA location.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Cycle builds the puzzle cycle from the validated configuration.
func (c Config) Cycle() (*domain.Cycle, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	drop, err := domain.NewTimeOfDay(c.DropHour, c.DropMinute)
	if err != nil {
		return nil, err
	}
	check, err := domain.NewTimeOfDay(c.CheckHour, c.CheckMinute)
	if err != nil {
		return nil, err
	}
	return domain.NewCycle(drop, check, loc), nil
}

// Roster maps the configured identifiers to participants.
func (c Config) Roster() domain.Roster {
	return domain.NewRoster(
		domain.Member{ID: c.User1, Name: c.User1Name},
		domain.Member{ID: c.User2, Name: c.User2Name},
	)
}
