package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
	"github.com/ji-woo-hub/suguan-bot/internal/store"
)

// Sender is a minimal interface the scheduler needs to send a text message.
// telegram.Router implements this (method: SendMessage).
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Reminders owns the in-memory registry of one-shot reminder timers,
// keyed by schedule id. The registry is never a source of truth: it is
// rebuilt from active rows on every start via Reconcile.
type Reminders struct {
	repo   store.Repo
	log    *zap.Logger
	sender Sender
	offset time.Duration

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

// New creates a reminder scheduler that fires each reminder `offset`
// before its schedule's event time.
func New(repo store.Repo, log *zap.Logger, sender Sender, offset time.Duration) *Reminders {
	return &Reminders{
		repo:   repo,
		log:    log,
		sender: sender,
		offset: offset,
		timers: make(map[int64]*time.Timer),
	}
}

// Schedule arms a one-shot reminder for a schedule. It returns the
// computed fire time and whether a timer was actually registered: a fire
// time not strictly in the future is skipped silently per the error
// contract. Re-arming an id replaces its previous timer, keeping at most
// one outstanding per schedule.
func (r *Reminders) Schedule(id, chatID int64, eventAt time.Time) (time.Time, bool) {
	fireAt := eventAt.Add(-r.offset)
	delay := time.Until(fireAt)
	if delay <= 0 {
		r.log.Debug("reminder already past, skipping",
			zap.Int64("scheduleID", id),
			zap.Time("fireAt", fireAt),
		)
		return fireAt, false
	}

	r.mu.Lock()
	if prev, ok := r.timers[id]; ok {
		prev.Stop()
	}
	r.timers[id] = time.AfterFunc(delay, func() { r.fire(id, chatID) })
	r.mu.Unlock()

	r.log.Info("reminder armed",
		zap.Int64("scheduleID", id),
		zap.Time("fireAt", fireAt),
	)
	return fireAt, true
}

// Cancel stops and removes the pending timer for a schedule, if any, then
// flips the row to canceled. A missing timer is not an error: the
// reminder may already have fired or never been armed.
func (r *Reminders) Cancel(ctx context.Context, id int64) error {
	r.mu.Lock()
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
	r.mu.Unlock()

	ok, err := r.repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusCanceled)
	if err != nil {
		return fmt.Errorf("cancel schedule %d: %w", id, err)
	}
	if !ok {
		// The reminder fired first; the finished status stands.
		r.log.Debug("cancel lost to a completed transition", zap.Int64("scheduleID", id))
	}
	return nil
}

// Reconcile rebuilds the timer registry from durable state: every active
// row with a future fire time gets exactly one timer. Past-due rows stay
// active with no timer; those reminders are missed, by contract.
// It returns the number of reminders armed.
func (r *Reminders) Reconcile(ctx context.Context) (int, error) {
	schedules, err := r.repo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active schedules: %w", err)
	}

	armed := 0
	for i := range schedules {
		s := &schedules[i]
		eventAt, err := s.EventAt()
		if err != nil {
			r.log.Warn("unreadable event time, skipping",
				zap.Int64("scheduleID", s.ID),
				zap.Error(err),
			)
			continue
		}
		if _, ok := r.Schedule(s.ID, s.UserID, eventAt); ok {
			armed++
		}
	}
	return armed, nil
}

// Pending returns the number of outstanding reminder timers.
func (r *Reminders) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Stop cancels all outstanding timers. Used on shutdown; rows stay
// active and are re-armed by the next start's Reconcile.
func (r *Reminders) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}

// fire runs in the timer goroutine when a reminder comes due.
func (r *Reminders) fire(id, chatID int64) {
	r.mu.Lock()
	delete(r.timers, id)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := r.repo.GetByID(ctx, id)
	if err != nil {
		r.log.Error("reminder fired but row unreadable",
			zap.Int64("scheduleID", id),
			zap.Error(err),
		)
		return
	}
	if s.Status != domain.StatusActive {
		// Canceled while the timer was pending.
		return
	}

	// Delivery is best-effort: a failed send is logged and the schedule
	// still completes.
	if err := r.sender.SendMessage(chatID, reminderText(s)); err != nil {
		r.log.Error("reminder send failed",
			zap.Int64("scheduleID", id),
			zap.Int64("chatID", chatID),
			zap.Error(err),
		)
	}

	ok, err := r.repo.UpdateStatus(ctx, id, domain.StatusActive, domain.StatusFinished)
	if err != nil {
		r.log.Error("finish schedule failed", zap.Int64("scheduleID", id), zap.Error(err))
		return
	}
	if !ok {
		r.log.Debug("finish lost to a completed transition", zap.Int64("scheduleID", id))
	}
}

func reminderText(s *domain.Schedule) string {
	return fmt.Sprintf(
		"⏰ Suguan reminder!\n\n"+
			"📅 %s (%s)\n"+
			"🕐 %s\n"+
			"📍 %s\n"+
			"👤 %s\n"+
			"🗣 %s",
		s.Date, s.Day, s.Time12, s.Locale, s.Role, s.Language,
	)
}
