// Package account manages player accounts: registration, balances,
// wallet linkage and the referral ledger.
// models.go describes the structures mapped onto the accounts table.
package account

import (
	"regexp"
	"time"
)

// Account represents one player in the database. The primary key is the
// Telegram user id, so an account is created on first verified contact
// (bot /start or mini-app open) and never deleted.
type Account struct {
	ID            int64      `db:"id"`             // Telegram user ID (primary key)
	Name          string     `db:"name"`           // Display name
	TelegramAlias *string    `db:"telegram_alias"` // @username, may be nil
	Coins         int64      `db:"coins"`          // Coin balance, never decreases
	NFT           int64      `db:"nft"`            // NFT credit count, never decreases
	WalletAddress *string    `db:"wallet_address"` // Linked Solana wallet, may be nil
	LastSpin      *time.Time `db:"last_spin"`      // Last awarded spin, nil until the first one
	BonusSpins    int        `db:"bonus_spins"`    // Cooldown-bypass credits from referrals
	ReferralCode  string     `db:"referral_code"`  // Unique 8-char invite code
	ReferredBy    *int64     `db:"referred_by"`    // Who invited this account, set once at creation
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// walletAddressRe matches a base58 string of 32-44 characters, the shape
// of a Solana wallet address.
var walletAddressRe = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsValidWalletAddress reports whether addr looks like a Solana address.
func IsValidWalletAddress(addr string) bool {
	return walletAddressRe.MatchString(addr)
}
