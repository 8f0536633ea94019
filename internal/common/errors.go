// Package common — errors.go defines the sentinel errors shared across
// the features. Handlers match on them to tell expected business
// rejections apart from infrastructure failures.
package common

import "errors"

// Spin errors
var (
	// ErrCooldownActive — the 24h window has not elapsed and no bonus spins are left
	ErrCooldownActive = errors.New("must wait 24 hours between spins or invite friends for bonus spins")
	// ErrSpinInProgress — a concurrent spin for the same account is already running
	ErrSpinInProgress = errors.New("spin already in progress")
)

// Account errors
var (
	// ErrAccountNotFound — no account row for the given id
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidWalletAddress — wallet address is not 32-44 base58 characters
	ErrInvalidWalletAddress = errors.New("invalid wallet address format")
)
