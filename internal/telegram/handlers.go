package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

const historyPageSize = 10

// --- start ---

func (r *Router) handleStart(_ context.Context, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, startText)
	msg.ReplyMarkup = mainMenuKeyboard()
	r.send(msg)
}

// --- scheduling conversation ---

func (r *Router) handleEnter(_ context.Context, chatID int64) {
	// Starting over discards any half-filled form.
	r.setSession(chatID, newSession())
	r.sendText(chatID, promptDate)
}

// advanceSession feeds one input into the conversation and sends the
// next prompt. Invalid input re-prompts the same step.
func (r *Router) advanceSession(ctx context.Context, chatID int64, sess *session, text string) {
	current := sess.step
	ok, done := sess.apply(text)
	if !ok {
		r.promptStep(chatID, current, true)
		return
	}
	if done {
		r.finishSession(ctx, chatID, sess)
		return
	}
	r.promptStep(chatID, sess.step, false)
}

// promptStep sends the prompt for a step, prefixed with the step's
// validation notice when the previous input was rejected.
func (r *Router) promptStep(chatID int64, st step, rejected bool) {
	var text string
	switch st {
	case stepDate:
		text = promptDate
		if rejected {
			text = rejectDate
		}
	case stepTime:
		text = promptTime
		if rejected {
			text = rejectTime
		}
	case stepLocale:
		text = promptLocale
		if rejected {
			text = rejectLocale
		}
	case stepRole:
		text = promptRole
		if rejected {
			text = rejectRole
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = roleKeyboard()
		r.send(msg)
		return
	case stepLanguage:
		text = promptLanguage
		if rejected {
			text = rejectLanguage
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = languageKeyboard()
		r.send(msg)
		return
	}
	r.sendText(chatID, text)
}

// finishSession persists the completed form, arms the reminder and
// reports back. The session is cleared no matter what; a storage error
// means the user starts over.
func (r *Router) finishSession(ctx context.Context, chatID int64, sess *session) {
	defer r.clearSession(chatID)

	s := sess.schedule(chatID)
	id, err := r.repo.Insert(ctx, s)
	if err != nil {
		r.log.Error("insert schedule failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, saveFailedText)
		return
	}

	eventAt, err := s.EventAt()
	if err != nil {
		// Both parts were validated step by step; treat as a save-time bug.
		r.log.Error("event time unreadable after validation",
			zap.Int64("scheduleID", id), zap.Error(err))
		r.sendText(chatID, savedText(s, ""))
		return
	}

	fireAt, armed := r.reminders.Schedule(id, chatID, eventAt)
	reminderLine := reminderSkippedText
	if armed {
		reminderLine = fmt.Sprintf(reminderArmedFmt,
			fireAt.Format(domain.DateLayout), fireAt.Format(domain.Time12Layout))
	}
	r.log.Info("schedule created",
		zap.Int64("scheduleID", id),
		zap.Int64("chatID", chatID),
		zap.Bool("reminderArmed", armed),
	)
	r.sendText(chatID, savedText(s, reminderLine))
}

// --- cancel ---

func (r *Router) handleCancel(ctx context.Context, chatID int64) {
	active, err := r.repo.ListActiveByUser(ctx, chatID)
	if err != nil {
		r.log.Error("list active failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, listFailedText)
		return
	}
	if len(active) == 0 {
		r.sendText(chatID, noActiveText)
		return
	}
	msg := tgbotapi.NewMessage(chatID, cancelPromptText)
	msg.ReplyMarkup = cancelListKeyboard(active)
	r.send(msg)
}

func (r *Router) handleCancelCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, value string) {
	chatID := cb.Message.Chat.ID

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		_ = r.answerCallback(cb.ID, "")
		return
	}

	s, err := r.repo.GetByID(ctx, id)
	if err != nil || s.UserID != chatID {
		_ = r.answerCallback(cb.ID, cancelGoneNotice)
		return
	}
	if s.Status != domain.StatusActive {
		_ = r.answerCallback(cb.ID, fmt.Sprintf(cancelLateFmt, s.Status))
		return
	}

	if err := r.reminders.Cancel(ctx, id); err != nil {
		r.log.Error("cancel failed", zap.Int64("scheduleID", id), zap.Error(err))
		_ = r.answerCallback(cb.ID, cancelFailedNotice)
		return
	}
	_ = r.answerCallback(cb.ID, "")
	r.log.Info("schedule canceled", zap.Int64("scheduleID", id), zap.Int64("chatID", chatID))

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, canceledText(s))
	r.send(edit)
}

// --- history ---

func (r *Router) handleHistory(ctx context.Context, chatID int64) {
	text, markup, err := r.historyPage(ctx, chatID, 0)
	if err != nil {
		r.log.Error("history failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, listFailedText)
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	r.send(msg)
}

func (r *Router) handleHistoryCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, value string) {
	chatID := cb.Message.Chat.ID

	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		_ = r.answerCallback(cb.ID, "")
		return
	}
	text, markup, err := r.historyPage(ctx, chatID, offset)
	if err != nil {
		r.log.Error("history page failed", zap.Int64("chatID", chatID), zap.Error(err))
		_ = r.answerCallback(cb.ID, listFailedText)
		return
	}
	_ = r.answerCallback(cb.ID, "")

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text)
	if markup != nil {
		edit.ReplyMarkup = markup
	}
	r.send(edit)
}

// historyPage renders one page of a user's schedules, newest first, plus
// paging buttons when neighbouring pages exist.
func (r *Router) historyPage(ctx context.Context, chatID int64, offset int) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	// Fetch one extra row to detect an older page.
	rows, err := r.repo.ListRecent(ctx, chatID, historyPageSize+1, offset)
	if err != nil {
		return "", nil, err
	}
	hasOlder := len(rows) > historyPageSize
	if hasOlder {
		rows = rows[:historyPageSize]
	}
	if len(rows) == 0 && offset == 0 {
		return noHistoryText, nil, nil
	}

	text := historyText(rows, offset)
	markup := historyNavKeyboard(offset, historyPageSize, hasOlder)
	return text, markup, nil
}
