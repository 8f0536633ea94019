// Package wheel — draw.go implements the weighted prize draw.
//
// The wheel shows 12 sectors (8 coins, 2 NFT, 2 zero) for animation
// variety, but the payout odds are decided by fixed thresholds over a
// uniform roll in [0, 1000):
//
//	[0, 5)      → NFT    0.5%
//	[5, 200)    → ZERO  19.5%
//	[200, 1000) → COINS 80.0%
//
// The visual sector is drawn independently and re-picked among matching
// sectors when its declared type disagrees with the outcome, so the
// animation always lands on a sector consistent with the real prize.
package wheel

import "math/rand"

const (
	rollRange     = 1000
	nftThreshold  = 5   // rolls below this are NFT
	zeroThreshold = 200 // rolls below this (and >= nftThreshold) are ZERO

	coinPrizeMin = 300
	coinPrizeMax = 1000
)

// Draw produces one spin result using the shared random source.
func Draw() DrawResult {
	return drawWith(rand.Int63n)
}

// drawWith runs the draw against an injectable uniform source; tests pass
// a deterministic one.
func drawWith(int63n func(int64) int64) DrawResult {
	roll := int(int63n(rollRange))
	kind := outcomeForRoll(roll)

	sector := int(int63n(12)) + 1
	if SectorKind(sector) != kind {
		matching := sectorsOfKind(kind)
		sector = matching[int63n(int64(len(matching)))]
	}

	var outcome Outcome
	switch kind {
	case KindCoins:
		amount := coinPrizeMin + int63n(coinPrizeMax-coinPrizeMin+1)
		outcome = CoinsPrize(amount)
	case KindNFT:
		outcome = NFTPrize()
	default:
		outcome = ZeroPrize()
	}

	return DrawResult{Sector: sector, Outcome: outcome}
}

// outcomeForRoll maps a uniform roll in [0, 1000) to the prize type.
func outcomeForRoll(roll int) PrizeKind {
	switch {
	case roll < nftThreshold:
		return KindNFT
	case roll < zeroThreshold:
		return KindZero
	default:
		return KindCoins
	}
}

// sectorsOfKind lists the 1-based sector indexes declaring the given type.
func sectorsOfKind(kind PrizeKind) []int {
	var out []int
	for i, k := range sectors {
		if k == kind {
			out = append(out, i+1)
		}
	}
	return out
}
