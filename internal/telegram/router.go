package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ji-woo-hub/suguan-bot/internal/store"
)

// ReminderScheduler is what the router needs from the reminder component.
// scheduler.Reminders implements it.
type ReminderScheduler interface {
	Schedule(id, chatID int64, eventAt time.Time) (time.Time, bool)
	Cancel(ctx context.Context, id int64) error
}

// Callback data prefixes.
const (
	cbRole    = "role"
	cbLang    = "lang"
	cbCancel  = "cancel"
	cbHistory = "hist"
)

// Router wires Telegram updates to handlers and holds the in-memory
// conversation sessions.
type Router struct {
	bot       *tgbotapi.BotAPI
	log       *zap.Logger
	repo      store.Repo
	reminders ReminderScheduler

	commands map[string]func(ctx context.Context, chatID int64)

	mu       sync.Mutex
	sessions map[int64]*session // chatID -> open conversation
}

// NewRouter creates a Telegram router. SetReminders must be called before
// the first update is handled.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo) *Router {
	r := &Router{
		bot:      bot,
		log:      log,
		repo:     repo,
		sessions: make(map[int64]*session),
	}
	// Explicit command table; keys are matched case-insensitively and
	// with or without the leading slash.
	r.commands = map[string]func(ctx context.Context, chatID int64){
		"start":   r.handleStart,
		"enter":   r.handleEnter,
		"cancel":  r.handleCancel,
		"history": r.handleHistory,
	}
	return r
}

// SetReminders attaches the reminder scheduler. Done after construction
// because the scheduler sends through this router.
func (r *Router) SetReminders(rem ReminderScheduler) {
	r.reminders = rem
}

// session returns the open conversation for a chat, or nil.
func (r *Router) session(chatID int64) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[chatID]
}

func (r *Router) setSession(chatID int64, s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[chatID] = s
}

func (r *Router) clearSession(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

// normalizeCommand lowercases input, strips a leading slash and a bot
// mention suffix, so "/Enter@SuguanBot", "enter" and "ENTER" all match
// the same table key.
func normalizeCommand(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimPrefix(t, "/")
	if at := strings.IndexByte(t, '@'); at != -1 {
		t = t[:at]
	}
	return t
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		r.handleMessage(ctx, upd.Message)
		return
	}
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
		return
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	// Commands win over an open conversation.
	if h, ok := r.commands[normalizeCommand(text)]; ok {
		h(ctx, chatID)
		return
	}

	if sess := r.session(chatID); sess != nil {
		r.advanceSession(ctx, chatID, sess, text)
		return
	}

	r.sendText(chatID, hintText)
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	kind, value, ok := strings.Cut(cb.Data, ":")
	if !ok {
		_ = r.answerCallback(cb.ID, "")
		return
	}

	switch kind {
	case cbRole, cbLang:
		// Selections feed the conversation like typed input would.
		_ = r.answerCallback(cb.ID, "")
		if sess := r.session(chatID); sess != nil {
			r.advanceSession(ctx, chatID, sess, value)
		}
	case cbCancel:
		r.handleCancelCallback(ctx, cb, value)
	case cbHistory:
		r.handleHistoryCallback(ctx, cb, value)
	default:
		_ = r.answerCallback(cb.ID, "")
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// --- Generic send helpers ---

func (r *Router) sendText(chatID int64, text string) {
	if err := r.SendMessage(chatID, text); err != nil {
		r.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) send(msg tgbotapi.Chattable) {
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Error(err))
	}
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}
