package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestCanSpinBonusOverridesCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	lastSpins := []*time.Time{
		nil,
		timePtr(now.Add(-time.Minute)),
		timePtr(now.Add(-23 * time.Hour)),
		timePtr(now.Add(-48 * time.Hour)),
		timePtr(now), // spun this very second
	}

	for _, last := range lastSpins {
		require.True(t, canSpinAt(last, 1, now), "lastSpin=%v", last)
		require.True(t, canSpinAt(last, 5, now), "lastSpin=%v", last)
	}
}

func TestCanSpinCooldownBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSpin *time.Time
		expected bool
	}{
		{"never spun", nil, true},
		{"24h and 1s ago", timePtr(now.Add(-SpinCooldown - time.Second)), true},
		{"exactly 24h ago", timePtr(now.Add(-SpinCooldown)), true},
		{"24h minus 1s ago", timePtr(now.Add(-SpinCooldown + time.Second)), false},
		{"just now", timePtr(now), false},
	}

	for _, tc := range tests {
		require.Equal(t, tc.expected, canSpinAt(tc.lastSpin, 0, now), tc.name)
	}
}

func TestTimeUntilNextSpin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSpin *time.Time
		hours    int
		minutes  int
	}{
		// a full window remaining floors to 23h59m, never {24,0}
		{"spun just now", timePtr(now), 23, 59},
		{"never spun", nil, 0, 0},
		{"window elapsed", timePtr(now.Add(-25 * time.Hour)), 0, 0},
		{"exactly elapsed", timePtr(now.Add(-SpinCooldown)), 0, 0},
		{"half window", timePtr(now.Add(-12 * time.Hour)), 12, 0},
		{"90 minutes left", timePtr(now.Add(-SpinCooldown + 90*time.Minute)), 1, 30},
	}

	for _, tc := range tests {
		h, m := timeUntilNextSpinAt(tc.lastSpin, now)
		require.Equal(t, tc.hours, h, tc.name)
		require.Equal(t, tc.minutes, m, tc.name)
	}
}

func TestTimeUntilNextSpinIgnoresBonusSpins(t *testing.T) {
	// the function has no bonus-spin input at all; this pins the contract
	// that the report covers the normal cooldown only
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h, m := timeUntilNextSpinAt(timePtr(now.Add(-time.Hour)), now)
	require.Equal(t, 23, h)
	require.Equal(t, 0, m)
}
