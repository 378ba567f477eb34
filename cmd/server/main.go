package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	emailPkg "sangha/internal/adapters/email"
	web "sangha/internal/adapters/http"
	"sangha/internal/adapters/http/middleware"
	"sangha/internal/adapters/storage"
	accountStore "sangha/internal/adapters/storage/account"
	eventStore "sangha/internal/adapters/storage/event"
	interestStore "sangha/internal/adapters/storage/interest"
	notificationStore "sangha/internal/adapters/storage/notification"
	"sangha/internal/application/orchestrators"
	"sangha/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup_event", "action", "config_load_failed", "error", err)
		os.Exit(1)
	}

	// WAL mode, foreign keys, and a busy timeout keep concurrent writers from
	// tripping over each other.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		slog.Error("startup_event", "action", "db_open_failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		slog.Error("startup_event", "action", "db_unreachable", "error", err)
		os.Exit(1)
	}

	if err := storage.InitDB(db); err != nil {
		slog.Error("startup_event", "action", "db_init_failed", "error", err)
		os.Exit(1)
	}

	// Create store instances
	acctStore := accountStore.NewSQLiteStore(db)
	evtStore := eventStore.NewSQLiteStore(db)
	intStore := interestStore.NewSQLiteStore(db)
	notifStore := notificationStore.NewSQLiteStore(db)

	ctx := context.Background()

	// The interest ledger is the source of truth for the interested counter.
	// Repair any drift left behind by a crash between writes.
	if repaired, err := evtStore.RecountInterested(ctx); err != nil {
		slog.Error("startup_event", "action", "recount_failed", "error", err)
		os.Exit(1)
	} else if repaired > 0 {
		slog.Warn("startup_event", "action", "interested_count_repaired", "events", repaired)
	}

	// Bootstrap admin account
	if cfg.AdminPassword != "" {
		_, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}, orchestrators.RegisterDeps{
			AccountStore: acctStore,
			GenerateID:   func() string { return uuid.New().String() },
			Now:          time.Now,
		})
		if err != nil {
			slog.Error("startup_event", "action", "seed_admin_failed", "error", err)
			os.Exit(1)
		}
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
		slog.Info("startup_event", "action", "email_sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("startup_event", "action", "email_delivery_disabled",
				"reason", "SANGHA_RESEND_API_KEY is not set")
		} else {
			slog.Info("startup_event", "action", "email_sender_configured", "provider", "noop")
		}
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Development fallback: tokens do not survive a restart.
		jwtSecret = uuid.New().String()
		slog.Warn("startup_event", "action", "ephemeral_jwt_secret",
			"reason", "SANGHA_JWT_SECRET is not set")
	}

	handler := web.NewRouter(&web.Stores{
		AccountStore:      acctStore,
		EventStore:        evtStore,
		InterestStore:     intStore,
		NotificationStore: notifStore,
	}, web.Options{
		TokenManager: middleware.NewTokenManager(jwtSecret),
		EmailSender:  sender,
		EmailFrom:    cfg.EmailFrom,
		EmailReplyTo: cfg.EmailReplyTo,
		SendTimeout:  time.Duration(cfg.SendTimeoutSeconds) * time.Second,
		LoginLimiter: middleware.NewRateLimiter(rate.Limit(1), 10),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("startup_event", "action", "server_starting",
			"version", version, "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("startup_event", "action", "server_failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_event", "action", "shutdown_failed", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown_event", "action", "server_stopped")
}
