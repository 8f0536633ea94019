package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		7:        "7",
		650:      "650",
		1000:     "1 000",
		12500:    "12 500",
		1234567:  "1 234 567",
		-42:      "-42",
		-1234567: "-1 234 567",
	}
	for n, want := range cases {
		require.Equal(t, want, FormatNumber(n))
	}
}

func TestFormatCoins(t *testing.T) {
	require.Equal(t, "1 coin", FormatCoins(1))
	require.Equal(t, "650 coins", FormatCoins(650))
	require.Equal(t, "12 500 coins", FormatCoins(12500))
}

func TestFormatCooldown(t *testing.T) {
	require.Equal(t, "23h 59m", FormatCooldown(23, 59))
	require.Equal(t, "0h 5m", FormatCooldown(0, 5))
}
