// Package account — repository.go runs all queries against the accounts table.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wheelproject/wheel-backend/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const accountColumns = `id, name, telegram_alias, coins, nft, wallet_address,
       last_spin, bonus_spins, referral_code, referred_by, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Name, &a.TelegramAlias, &a.Coins, &a.NFT, &a.WalletAddress,
		&a.LastSpin, &a.BonusSpins, &a.ReferralCode, &a.ReferredBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID returns the account or common.ErrAccountNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read account (id=%d): %w", id, err)
	}
	return a, nil
}

// GetByReferralCode returns the account owning the code, or common.ErrAccountNotFound.
func (r *Repository) GetByReferralCode(ctx context.Context, code string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE referral_code = $1`
	a, err := scanAccount(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read account (code=%s): %w", code, err)
	}
	return a, nil
}

// Create inserts a new account row.
func (r *Repository) Create(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO accounts (id, name, telegram_alias, coins, nft, bonus_spins, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query, a.ID, a.Name, a.TelegramAlias, a.Coins, a.NFT, a.BonusSpins, a.ReferralCode, a.ReferredBy)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// UpdateAlias refreshes the stored @username.
func (r *Repository) UpdateAlias(ctx context.Context, id int64, alias *string) error {
	query := `UPDATE accounts SET telegram_alias = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, alias); err != nil {
		return fmt.Errorf("failed to update alias: %w", err)
	}
	return nil
}

// SetReferralCode backfills a referral code for accounts created before the
// referral feature existed.
func (r *Repository) SetReferralCode(ctx context.Context, id int64, code string) error {
	query := `UPDATE accounts SET referral_code = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, code); err != nil {
		return fmt.Errorf("failed to set referral code: %w", err)
	}
	return nil
}

// ReferralCodeExists reports whether any account already owns the code.
func (r *Repository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE referral_code = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check referral code: %w", err)
	}
	return exists, nil
}

// IncrementBonusSpins credits one bonus spin to the referrer.
func (r *Repository) IncrementBonusSpins(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET bonus_spins = bonus_spins + 1, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment bonus spins: %w", err)
	}
	return nil
}

// SetWalletAddress stores a new wallet address; nil clears the linkage.
func (r *Repository) SetWalletAddress(ctx context.Context, id int64, addr *string) error {
	query := `UPDATE accounts SET wallet_address = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, addr); err != nil {
		return fmt.Errorf("failed to set wallet address: %w", err)
	}
	return nil
}

// CountReferred returns how many accounts signed up with this account's code.
func (r *Repository) CountReferred(ctx context.Context, id int64) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE referred_by = $1`
	var n int
	if err := r.db.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count referred accounts: %w", err)
	}
	return n, nil
}

// ListCooldownElapsedBetween returns accounts whose last spin falls inside
// [from, to), i.e. whose 24h cooldown elapsed within the matching window.
// Accounts holding bonus spins are skipped: they could spin all along, so
// a "spin is ready" nudge would be noise. Used by the reminder job.
func (r *Repository) ListCooldownElapsedBetween(ctx context.Context, from, to time.Time) ([]*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE last_spin IS NOT NULL AND last_spin >= $1 AND last_spin < $2
		  AND bonus_spins = 0
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder candidates: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	return out, nil
}
