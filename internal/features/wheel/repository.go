// Package wheel — repository.go persists spin outcomes.
// The prize row, the balance update and the last_spin advance happen in a
// single database transaction: either all commit or none do.
package wheel

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository writes prize rows and spin-related account fields.
// Per the writer-ownership rule it is the only place that advances
// last_spin, increments balances and decrements bonus_spins.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ConsumeBonusSpin decrements bonus_spins by one. The WHERE clause keeps
// the counter non-negative even under races the in-process guard missed.
func (r *Repository) ConsumeBonusSpin(ctx context.Context, accountID int64) error {
	query := `
		UPDATE accounts
		SET bonus_spins = bonus_spins - 1, updated_at = NOW()
		WHERE id = $1 AND bonus_spins > 0
	`
	tag, err := r.db.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to consume bonus spin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no bonus spins left for account %d", accountID)
	}
	return nil
}

// AwardPrize records a spin outcome atomically: inserts the prize row,
// applies the matching balance delta and sets last_spin = NOW().
func (r *Repository) AwardPrize(ctx context.Context, accountID int64, outcome Outcome) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var amount *int64
	if a, ok := outcome.CoinAmount(); ok {
		amount = &a
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO prizes (account_id, prize_type, amount)
		VALUES ($1, $2, $3)
	`, accountID, string(outcome.Kind()), amount)
	if err != nil {
		return fmt.Errorf("failed to insert prize: %w", err)
	}

	switch outcome.Kind() {
	case KindCoins:
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET coins = coins + $2, last_spin = NOW(), updated_at = NOW()
			WHERE id = $1
		`, accountID, *amount)
	case KindNFT:
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET nft = nft + 1, last_spin = NOW(), updated_at = NOW()
			WHERE id = $1
		`, accountID)
	default:
		// ZERO prize still consumes the daily spin
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET last_spin = NOW(), updated_at = NOW()
			WHERE id = $1
		`, accountID)
	}
	if err != nil {
		return fmt.Errorf("failed to apply prize to account: %w", err)
	}

	return tx.Commit(ctx)
}

// ListPrizes returns the account's prize history, newest first.
func (r *Repository) ListPrizes(ctx context.Context, accountID int64, limit int) ([]*Prize, error) {
	query := `
		SELECT id, account_id, prize_type, amount, created_at
		FROM prizes
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query prizes: %w", err)
	}
	defer rows.Close()

	var out []*Prize
	for rows.Next() {
		var p Prize
		if err := rows.Scan(&p.ID, &p.AccountID, &p.PrizeType, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prize row: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prize rows: %w", err)
	}
	return out, nil
}
