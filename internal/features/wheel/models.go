// Package wheel implements the wheel-of-fortune engine: spin eligibility,
// the weighted prize draw and the spin orchestration.
// models.go describes prize outcomes and the visual wheel layout.
package wheel

import (
	"fmt"
	"time"
)

// PrizeKind is the true outcome type of a spin.
type PrizeKind string

const (
	KindCoins PrizeKind = "COINS"
	KindNFT   PrizeKind = "NFT"
	KindZero  PrizeKind = "ZERO"
)

// Outcome is a closed prize variant: coins carry an amount, NFT and zero
// do not. The fields are unexported so a coins outcome without an amount
// cannot be constructed.
type Outcome struct {
	kind   PrizeKind
	amount int64
}

// CoinsPrize builds a coin outcome. amount must be positive.
func CoinsPrize(amount int64) Outcome {
	if amount <= 0 {
		panic(fmt.Sprintf("wheel: non-positive coin prize amount %d", amount))
	}
	return Outcome{kind: KindCoins, amount: amount}
}

// NFTPrize builds an NFT-credit outcome.
func NFTPrize() Outcome { return Outcome{kind: KindNFT} }

// ZeroPrize builds an empty outcome. The spin still counts against the
// cooldown.
func ZeroPrize() Outcome { return Outcome{kind: KindZero} }

// Kind returns the outcome type.
func (o Outcome) Kind() PrizeKind { return o.kind }

// CoinAmount returns the coin payout and true for coin outcomes,
// and (0, false) otherwise.
func (o Outcome) CoinAmount() (int64, bool) {
	if o.kind != KindCoins {
		return 0, false
	}
	return o.amount, true
}

// sectors is the visual wheel layout: 12 sectors, 1-based indexing on the
// wire. The declared types are animation labels only; the payout
// probability is decided by the draw thresholds, not by sector frequency.
var sectors = [12]PrizeKind{
	KindCoins, // sector 1
	KindNFT,   // sector 2
	KindCoins, // sector 3
	KindCoins, // sector 4
	KindZero,  // sector 5
	KindCoins, // sector 6
	KindCoins, // sector 7
	KindNFT,   // sector 8
	KindCoins, // sector 9
	KindCoins, // sector 10
	KindZero,  // sector 11
	KindCoins, // sector 12
}

// SectorKind returns the declared type of a 1-based visual sector.
func SectorKind(index int) PrizeKind {
	return sectors[index-1]
}

// DrawResult couples the true outcome with the visual sector the wheel
// animation should land on.
type DrawResult struct {
	Sector  int // 1-12
	Outcome Outcome
}

// SpinResult is what the orchestrator returns for a successful spin.
type SpinResult struct {
	Sector        int
	Outcome       Outcome
	UsedBonusSpin bool
}

// Prize is one append-only history row in the prizes table.
type Prize struct {
	ID        int64     `db:"id"`
	AccountID int64     `db:"account_id"`
	PrizeType PrizeKind `db:"prize_type"`
	Amount    *int64    `db:"amount"` // set only for COINS
	CreatedAt time.Time `db:"created_at"`
}
