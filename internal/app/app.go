// Package app initializes all application components.
// app.go is the assembly point: it creates the DB pool, repositories,
// services, the bot, the HTTP API and the scheduler.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/bot"
	"github.com/wheelproject/wheel-backend/internal/config"
	"github.com/wheelproject/wheel-backend/internal/db/postgres"
	"github.com/wheelproject/wheel-backend/internal/features/account"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
	"github.com/wheelproject/wheel-backend/internal/jobs"
	"github.com/wheelproject/wheel-backend/internal/server"
)

// App holds all application components.
type App struct {
	Bot       *bot.Bot
	Server    *server.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New creates and wires the application.
// Initialization order matters: components depend on each other.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API client: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Authorized as @%s", botAPI.Self.UserName)

	// === 3. Repositories ===
	accountRepo := account.NewRepository(pool)
	wheelRepo := wheel.NewRepository(pool)

	// === 4. Services ===
	accountService := account.NewService(accountRepo)
	wheelService := wheel.NewService(accountService, wheelRepo)

	// === 5. Bot and HTTP API ===
	b := bot.New(botAPI, cfg, accountService, wheelService)
	srv := server.New(cfg, accountService, wheelService)

	// === 6. Scheduler ===
	var scheduler *jobs.Scheduler
	if cfg.FeatureRemindersEnabled {
		reminder := wheel.NewReminder(accountRepo)
		scheduler = jobs.NewScheduler(reminder, b.SendMessageToUser)
	}

	return &App{
		Bot:       b,
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations applies all SQL migrations in order.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Prizes},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("Migration %d applied", m.version)
	}

	return nil
}

// SQL migrations are embedded in the binary to keep deployment simple.

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id BIGINT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    telegram_alias VARCHAR(255),
    coins BIGINT NOT NULL DEFAULT 0,
    nft BIGINT NOT NULL DEFAULT 0,
    wallet_address VARCHAR(64),
    last_spin TIMESTAMPTZ,
    bonus_spins INTEGER NOT NULL DEFAULT 0,
    referral_code VARCHAR(8) UNIQUE NOT NULL,
    referred_by BIGINT REFERENCES accounts(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_accounts_referral_code ON accounts(referral_code);
CREATE INDEX IF NOT EXISTS idx_accounts_referred_by ON accounts(referred_by);
CREATE INDEX IF NOT EXISTS idx_accounts_last_spin ON accounts(last_spin);
`

var migration002Prizes = `
CREATE TABLE IF NOT EXISTS prizes (
    id BIGSERIAL PRIMARY KEY,
    account_id BIGINT NOT NULL REFERENCES accounts(id),
    prize_type VARCHAR(16) NOT NULL,
    amount BIGINT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_prizes_account_created ON prizes(account_id, created_at DESC);
`
