// Package main — seeds a test account for manual referral testing.
// Idempotent: running it again just prints the existing referral link.
package main

import (
	"context"
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/common"
	"github.com/wheelproject/wheel-backend/internal/config"
	"github.com/wheelproject/wheel-backend/internal/db/postgres"
	"github.com/wheelproject/wheel-backend/internal/features/account"
)

const (
	testAccountID    = 2500
	testReferralCode = "TEST1234"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer pool.Close()

	repo := account.NewRepository(pool)

	existing, err := repo.GetByID(ctx, testAccountID)
	if err != nil && !errors.Is(err, common.ErrAccountNotFound) {
		log.WithError(err).Fatal("Failed to look up test account")
	}
	if existing != nil {
		log.Infof("Test account already exists with referral code %s", existing.ReferralCode)
		log.Infof("Test referral link: https://t.me/%s?startapp=%s", cfg.TelegramBotUsername, existing.ReferralCode)
		return
	}

	alias := "testuser"
	a := &account.Account{
		ID:            testAccountID,
		Name:          "Test User",
		TelegramAlias: &alias,
		Coins:         1000, // some coins for testing
		NFT:           1,
		ReferralCode:  testReferralCode,
	}
	if err := repo.Create(ctx, a); err != nil {
		log.WithError(err).Fatal("Failed to create test account")
	}

	log.Info("Test account created")
	log.Infof("Account ID: %d, referral code: %s", testAccountID, testReferralCode)
	log.Infof("Test referral link: https://t.me/%s?startapp=%s", cfg.TelegramBotUsername, testReferralCode)
}
