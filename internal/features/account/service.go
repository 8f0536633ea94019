// Package account — service.go implements the registration and referral
// business logic on top of the repository.
package account

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/common"
)

// Storage is what the service needs from persistence. *Repository is the
// production implementation; tests substitute an in-memory fake.
type Storage interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByReferralCode(ctx context.Context, code string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	UpdateAlias(ctx context.Context, id int64, alias *string) error
	SetReferralCode(ctx context.Context, id int64, code string) error
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	IncrementBonusSpins(ctx context.Context, id int64) error
	SetWalletAddress(ctx context.Context, id int64, addr *string) error
	CountReferred(ctx context.Context, id int64) (int, error)
}

// Service manages accounts and the referral ledger.
type Service struct {
	repo Storage
}

func NewService(repo Storage) *Service {
	return &Service{repo: repo}
}

// GetOrCreate loads the account for a verified Telegram identity, creating
// it on first contact. referralCode, when non-empty, attributes the signup:
// the new account starts with one bonus spin and the referrer is credited
// one bonus spin. A code owned by the same identity is silently ignored.
func (s *Service) GetOrCreate(ctx context.Context, id int64, name string, alias *string, referralCode string) (*Account, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, common.ErrAccountNotFound) {
		return nil, err
	}

	if existing != nil {
		return s.refreshExisting(ctx, existing, alias)
	}

	// Resolve the referrer before any write; self-referral grants nothing.
	var referrer *Account
	if referralCode != "" {
		ref, err := s.ResolveReferral(ctx, referralCode)
		if err != nil {
			return nil, err
		}
		if ref != nil && ref.ID != id {
			referrer = ref
		}
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	a := &Account{
		ID:            id,
		Name:          name,
		TelegramAlias: alias,
		ReferralCode:  code,
	}
	if referrer != nil {
		a.BonusSpins = 1 // the referred side's welcome bonus spin
		a.ReferredBy = &referrer.ID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	// Credit the referrer as a separate follow-up write. If the process dies
	// between the two writes the credit is lost while the new account stays;
	// the new-account write comes first so a crash never credits a phantom
	// signup.
	if referrer != nil {
		if err := s.repo.IncrementBonusSpins(ctx, referrer.ID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"referrer_id": referrer.ID,
				"account_id":  id,
			}).Error("failed to credit referrer bonus spin")
		} else {
			log.WithFields(log.Fields{
				"referrer_id": referrer.ID,
				"account_id":  id,
			}).Info("Referral bonus spin credited")
		}
	}

	log.WithFields(log.Fields{
		"account_id": id,
		"referred":   referrer != nil,
	}).Info("New account registered")

	return s.repo.GetByID(ctx, id)
}

// refreshExisting updates mutable identity fields on repeat contact and
// backfills a referral code for accounts created before codes existed.
func (s *Service) refreshExisting(ctx context.Context, a *Account, alias *string) (*Account, error) {
	changed := false

	if alias != nil && (a.TelegramAlias == nil || *a.TelegramAlias != *alias) {
		if err := s.repo.UpdateAlias(ctx, a.ID, alias); err != nil {
			return nil, err
		}
		changed = true
	}

	if a.ReferralCode == "" {
		code, err := s.uniqueReferralCode(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetReferralCode(ctx, a.ID, code); err != nil {
			return nil, err
		}
		changed = true
	}

	if !changed {
		return a, nil
	}
	return s.repo.GetByID(ctx, a.ID)
}

// uniqueReferralCode draws codes until one does not collide with an
// existing account.
func (s *Service) uniqueReferralCode(ctx context.Context) (string, error) {
	for {
		code := newReferralCode()
		exists, err := s.repo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

// GetByID returns the account or common.ErrAccountNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveReferral maps an invite code to its owning account.
// Returns (nil, nil) for an unknown code.
func (s *Service) ResolveReferral(ctx context.Context, code string) (*Account, error) {
	a, err := s.repo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// SetWalletAddress links a wallet to the account; nil clears it.
// Non-nil addresses must be 32-44 base58 characters.
func (s *Service) SetWalletAddress(ctx context.Context, id int64, addr *string) error {
	if addr != nil && !IsValidWalletAddress(*addr) {
		return common.ErrInvalidWalletAddress
	}
	return s.repo.SetWalletAddress(ctx, id, addr)
}

// CountReferred returns the number of accounts invited by this one.
func (s *Service) CountReferred(ctx context.Context, id int64) (int, error) {
	return s.repo.CountReferred(ctx, id)
}
