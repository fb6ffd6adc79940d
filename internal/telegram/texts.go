package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

// UI texts in English
const (
	startText = "👋 I keep track of your Suguan.\n\n" +
		"• enter — schedule a new Suguan (I'll ask for date, time, locale, role and language)\n" +
		"• cancel — cancel an active Suguan\n" +
		"• history — your recent Suguan\n\n" +
		"I send a reminder 3 hours before each Suguan.\n" +
		"Commands work with or without the slash, in any case."
	hintText = "I didn't catch that. Try enter, cancel or history — or /start for help."

	promptDate     = "📅 When is the Suguan? Send the date as MM-DD-YYYY, e.g. 12-15-2025."
	rejectDate     = "That doesn't look like a date. Please use MM-DD-YYYY, e.g. 12-15-2025."
	promptTime     = "🕐 What time? Send it in 24-hour form HH:MM, e.g. 14:30."
	rejectTime     = "That doesn't look like a time. Please use 24-hour HH:MM, e.g. 14:30."
	promptLocale   = "📍 Which locale?"
	rejectLocale   = "Please send the locale name."
	promptRole     = "👤 What is your role?"
	rejectRole     = "Please pick one of the listed roles."
	promptLanguage = "🗣 Which language?"
	rejectLanguage = "Please pick one of the listed languages."

	saveFailedText = "Something went wrong saving your Suguan. Please try again with enter."
	listFailedText = "Something went wrong reading your Suguan. Please try again."

	reminderSkippedText = "⚠️ The reminder time has already passed, so no reminder will be sent."
	reminderArmedFmt    = "🔔 I'll remind you on %s at %s."

	cancelPromptText   = "Which Suguan do you want to cancel?"
	noActiveText       = "You have no active Suguan."
	cancelGoneNotice   = "That Suguan is gone."
	cancelLateFmt      = "Already %s."
	cancelFailedNotice = "Could not cancel, please try again."

	noHistoryText = "No Suguan yet. Use enter to schedule one."
)

func savedText(s *domain.Schedule, reminderLine string) string {
	var b strings.Builder
	b.WriteString("✅ Suguan saved!\n\n")
	b.WriteString(scheduleLine(s))
	if reminderLine != "" {
		b.WriteString("\n\n")
		b.WriteString(reminderLine)
	}
	return b.String()
}

func canceledText(s *domain.Schedule) string {
	return "❌ Canceled:\n" + scheduleLine(s)
}

// scheduleLine renders one schedule's full field projection.
func scheduleLine(s *domain.Schedule) string {
	return fmt.Sprintf("📅 %s (%s) 🕐 %s\n📍 %s · 👤 %s · 🗣 %s",
		s.Date, s.Day, s.Time12, s.Locale, s.Role, s.Language)
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusActive:
		return "🟢 active"
	case domain.StatusCanceled:
		return "❌ canceled"
	case domain.StatusFinished:
		return "✔️ finished"
	}
	return string(s)
}

func historyText(rows []domain.Schedule, offset int) string {
	var b strings.Builder
	b.WriteString("🗂 Your Suguan, newest first:\n")
	for i, s := range rows {
		fmt.Fprintf(&b, "\n%d. %s (%s) %s — %s, %s, %s [%s]",
			offset+i+1, s.Date, s.Day, s.Time12,
			s.Locale, s.Role, s.Language, statusLabel(s.Status))
	}
	return b.String()
}

// --- Keyboards ---

// mainMenuKeyboard is the persistent reply keyboard with the keyword
// commands.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Enter"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Cancel"),
			tgbotapi.NewKeyboardButton("History"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func roleKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, role := range domain.Roles {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(role, cbRole+":"+role))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range domain.Languages {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(lang, cbLang+":"+lang))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// cancelListKeyboard renders one button per active schedule.
func cancelListKeyboard(rows []domain.Schedule) tgbotapi.InlineKeyboardMarkup {
	var kb [][]tgbotapi.InlineKeyboardButton
	for _, s := range rows {
		label := fmt.Sprintf("%s %s — %s", s.Date, s.Time12, s.Locale)
		kb = append(kb, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s:%d", cbCancel, s.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}

// historyNavKeyboard builds Newer/Older paging buttons; nil when the
// whole history fits on one page.
func historyNavKeyboard(offset, pageSize int, hasOlder bool) *tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if offset > 0 {
		newer := offset - pageSize
		if newer < 0 {
			newer = 0
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"⬅️ Newer", fmt.Sprintf("%s:%d", cbHistory, newer)))
	}
	if hasOlder {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"Older ➡️", fmt.Sprintf("%s:%d", cbHistory, offset+pageSize)))
	}
	if len(row) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(row)
	return &markup
}
