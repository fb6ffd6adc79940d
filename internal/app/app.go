package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ji-woo-hub/suguan-bot/internal/config"
	"github.com/ji-woo-hub/suguan-bot/internal/scheduler"
	"github.com/ji-woo-hub/suguan-bot/internal/store"
	"github.com/ji-woo-hub/suguan-bot/internal/telegram"
)

type App struct {
	cfg       config.Config
	log       *zap.Logger
	bot       *tgbotapi.BotAPI
	httpSrv   *http.Server
	repo      store.Repo
	router    *telegram.Router
	reminders *scheduler.Reminders
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting suguan-bot",
		zap.String("db", a.cfg.DBPath),
		zap.Duration("reminderOffset", a.cfg.ReminderOffset),
		zap.String("http", a.cfg.HTTPAddr),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	// The router sends for the scheduler, the scheduler arms and cancels
	// for the router.
	a.router = telegram.NewRouter(a.bot, a.log, a.repo)
	a.reminders = scheduler.New(a.repo, a.log, a.router, a.cfg.ReminderOffset)
	a.router.SetReminders(a.reminders)

	// Re-arm reminders for schedules that were active before the last
	// shutdown; timers do not survive a restart, rows do.
	armed, err := a.reminders.Reconcile(ctx)
	if err != nil {
		a.log.Error("reminder reconciliation failed", zap.Error(err))
		return err
	}
	a.log.Info("reminders reconciled", zap.Int("armed", armed))

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			a.reminders.Stop()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
