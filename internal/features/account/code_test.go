package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReferralCodeShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := newReferralCode()
		require.Len(t, code, referralCodeLength)
		for _, c := range code {
			require.True(t, strings.ContainsRune(referralCodeAlphabet, c),
				"unexpected character %q in code %q", c, code)
		}
	}
}

func TestNewReferralCodeVariety(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[newReferralCode()] = struct{}{}
	}
	// 36^8 codes; 1000 draws colliding would mean a broken generator
	require.Greater(t, len(seen), 990)
}
