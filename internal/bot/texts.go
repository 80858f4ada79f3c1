package bot

import (
	"fmt"

	"github.com/ykvlv/streak-bot/internal/domain"
)

// Texts renders every user-visible message. Nothing else reaches users.
type Texts struct {
	sig string
}

// NewTexts signs messages with the bot's name.
func NewTexts(botName string) Texts {
	return Texts{sig: "\n\n ⭐ " + botName}
}

const statusFmt = "%s\n\n" +
	"📍 LinkedIn Games running on: %s\n" +
	"📍 Today's Date: %s"

func (t Texts) AccessDenied() string { return "❌ Access denied." + t.sig }

func (t Texts) Status(paused bool, running, today domain.PuzzleDate) string {
	header := "✅ Bot active!"
	if paused {
		header = "⏸️ Bot paused!"
	}
	return fmt.Sprintf(statusFmt, header, domain.FormatPuzzleDate(running), domain.FormatPuzzleDate(today)) + t.sig
}

func (t Texts) PausedIndefinitely() string {
	return "⏸️ Bot paused indefinitely. Send !resume to resume."
}

func (t Texts) Resumed() string   { return "✅ Bot resumed!" }
func (t Texts) ResetDone() string { return "🧹 Reset done! All play logs cleared." + t.sig }
func (t Texts) Paused() string    { return "⏸️ Bot paused!" + t.sig }
func (t Texts) TooLate() string   { return "⏳ Too late for this cycle!" + t.sig }
func (t Texts) Noted() string     { return "✅ Noted!" }

func (t Texts) AlreadyRecorded(pd domain.PuzzleDate) string {
	return fmt.Sprintf("✅ Already recorded for: %s.", domain.FormatPuzzleDate(pd))
}

func (t Texts) PlayedAck(pd domain.PuzzleDate) string {
	return fmt.Sprintf("✅ Noted! I informed the other person for: %s.", domain.FormatPuzzleDate(pd))
}

// PlayedNotice goes to the participant who has not reported yet.
func (t Texts) PlayedNotice(name string, pd domain.PuzzleDate) string {
	return fmt.Sprintf("📛 Update!\n%s has completed LinkedIn Games for: %s.\nDon't miss your turn!",
		name, domain.FormatPuzzleDate(pd)) + t.sig
}

// Reminder is broadcast by the daily check when nobody played.
func (t Texts) Reminder(pd domain.PuzzleDate) string {
	return fmt.Sprintf("⚠️ Game Alert!\n😕 Neither of you played LinkedIn Games for: %s.\n"+
		"🔥 Don't break the streak, go solve it now!", domain.FormatPuzzleDate(pd)) + t.sig
}

func (t Texts) Help() string {
	return "🤔 Sorry, I didn't quite understand that!\nTry using !status to view bot stats." + t.sig
}

func (t Texts) Failure() string {
	return "⚠️ Something went wrong. Please try again later." + t.sig
}
