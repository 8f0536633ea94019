// Package bot contains the Telegram bot: initialization, the polling
// loop and the DM menu flows (wallet linking, NFT pitch, prize history).
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/bot/middleware"
	"github.com/wheelproject/wheel-backend/internal/config"
	"github.com/wheelproject/wheel-backend/internal/features/account"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

// Bot glues the Telegram API to the account and wheel services.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	rateLimiter *middleware.RateLimiter

	accounts *account.Service
	spins    *wheel.Service

	states *stateStore

	// caps how many updates are handled in parallel
	inflight chan struct{}
}

// New creates the bot with all its dependencies.
func New(api *tgbotapi.BotAPI, cfg *config.Config, accounts *account.Service, spins *wheel.Service) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:         api,
		cfg:         cfg,
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		accounts:    accounts,
		spins:       spins,
		states:      newStateStore(),
		inflight:    make(chan struct{}, maxInFlight),
	}
}

// Start runs long polling until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Bot started, waiting for messages...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Bot stopping (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Updates channel closed, bot stopped")
				return
			}

			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate processes one update from Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}

	message := update.Message

	// The bot only works in DMs; group chatter is none of its business.
	if !message.Chat.IsPrivate() {
		return
	}

	middleware.LogMessage(message)

	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	if strings.HasPrefix(text, "/") {
		b.handleCommand(ctx, chatID, userID, message.From, text)
		return
	}

	b.handleMenuInput(ctx, chatID, userID, text)
}

// handleCommand routes slash commands. /start may carry a referral code
// as its payload ("/start ABCD1234" from an invite deep link).
func (b *Bot) handleCommand(ctx context.Context, chatID, userID int64, from *tgbotapi.User, text string) {
	parts := strings.Fields(text)
	cmd := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "start":
		referralCode := ""
		if len(parts) > 1 {
			referralCode = parts[1]
		}
		b.handleStart(ctx, chatID, userID, from, referralCode)
	case "help":
		b.sendMenu(chatID, welcomeMessage)
	}
}
