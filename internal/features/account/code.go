// Package account — code.go generates referral codes.
package account

import "math/rand"

// referralCodeAlphabet — the fixed alphabet referral codes are drawn from.
const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// referralCodeLength — codes are always 8 characters.
const referralCodeLength = 8

// newReferralCode draws 8 characters independently and uniformly from the
// alphabet. Uniqueness is enforced by the caller (collision check against
// the accounts table before persisting).
func newReferralCode() string {
	b := make([]byte, referralCodeLength)
	for i := range b {
		b[i] = referralCodeAlphabet[rand.Intn(len(referralCodeAlphabet))]
	}
	return string(b)
}
