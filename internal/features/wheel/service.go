// Package wheel — service.go is the spin orchestrator. It ties together
// the eligibility policy, the per-account guard, the prize draw and the
// transactional award write.
package wheel

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/common"
	"github.com/wheelproject/wheel-backend/internal/features/account"
)

// AccountGetter is the slice of the account service the orchestrator needs.
type AccountGetter interface {
	GetByID(ctx context.Context, id int64) (*account.Account, error)
}

// Store is the spin persistence surface. *Repository is the production
// implementation; tests substitute an in-memory fake.
type Store interface {
	ConsumeBonusSpin(ctx context.Context, accountID int64) error
	AwardPrize(ctx context.Context, accountID int64, outcome Outcome) error
	ListPrizes(ctx context.Context, accountID int64, limit int) ([]*Prize, error)
}

// Service orchestrates spins.
type Service struct {
	accounts AccountGetter
	store    Store
	guard    *Guard

	// draw is swapped for a deterministic one in tests
	draw func() DrawResult
}

func NewService(accounts AccountGetter, store Store) *Service {
	return &Service{
		accounts: accounts,
		store:    store,
		guard:    NewGuard(),
		draw:     Draw,
	}
}

// Spin runs one spin for the account.
//
// Preconditions, in order: the account must exist; the eligibility policy
// must allow a spin (common.ErrCooldownActive otherwise); no other spin
// for the same account may be in flight (common.ErrSpinInProgress).
// On success exactly one prize row exists, the matching balance is
// credited and last_spin has advanced, all in one transaction.
func (s *Service) Spin(ctx context.Context, accountID int64) (*SpinResult, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if !CanSpin(a.LastSpin, a.BonusSpins) {
		return nil, common.ErrCooldownActive
	}

	if !s.guard.TryAcquire(accountID) {
		return nil, common.ErrSpinInProgress
	}
	defer s.guard.Release(accountID)

	// A bonus spin is consumed only when it is actually needed: the account
	// has credits AND the normal cooldown has not yet elapsed. The decrement
	// must land before the award commit so the spin cannot be reported as a
	// normal one while bypassing the cooldown for free.
	usedBonus := a.BonusSpins > 0 && !canSpinNormally(a)
	if usedBonus {
		if err := s.store.ConsumeBonusSpin(ctx, accountID); err != nil {
			return nil, fmt.Errorf("failed to use bonus spin: %w", err)
		}
	}

	result := s.draw()

	if err := s.store.AwardPrize(ctx, accountID, result.Outcome); err != nil {
		return nil, fmt.Errorf("failed to persist prize: %w", err)
	}

	logPrize(accountID, result, usedBonus)

	return &SpinResult{
		Sector:        result.Sector,
		Outcome:       result.Outcome,
		UsedBonusSpin: usedBonus,
	}, nil
}

// RecentPrizes returns the account's latest spin outcomes, newest first.
func (s *Service) RecentPrizes(ctx context.Context, accountID int64, limit int) ([]*Prize, error) {
	return s.store.ListPrizes(ctx, accountID, limit)
}

// canSpinNormally checks the 24h rule alone, ignoring bonus spins.
func canSpinNormally(a *account.Account) bool {
	return CanSpin(a.LastSpin, 0)
}

func logPrize(accountID int64, result DrawResult, usedBonus bool) {
	fields := log.Fields{
		"account_id": accountID,
		"prize_type": result.Outcome.Kind(),
		"sector":     result.Sector,
		"used_bonus": usedBonus,
	}
	if amount, ok := result.Outcome.CoinAmount(); ok {
		fields["amount"] = amount
	}
	log.WithFields(fields).Info("Prize awarded")
}
