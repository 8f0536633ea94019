// Package wheel — eligibility.go decides whether an account may spin now.
// Both functions are pure over their inputs and the wall clock; the
// cooldown is recomputed on every call, so the policy survives process
// restarts without timers.
package wheel

import "time"

// SpinCooldown is the minimum interval between ordinary (non-bonus) spins.
const SpinCooldown = 24 * time.Hour

// CanSpin reports whether a spin is allowed right now.
// Bonus spins override the cooldown unconditionally.
func CanSpin(lastSpin *time.Time, bonusSpins int) bool {
	return canSpinAt(lastSpin, bonusSpins, time.Now())
}

func canSpinAt(lastSpin *time.Time, bonusSpins int, now time.Time) bool {
	if bonusSpins > 0 {
		return true
	}
	if lastSpin == nil {
		return true
	}
	return now.Sub(*lastSpin) >= SpinCooldown
}

// TimeUntilNextSpin returns the remainder of the normal 24h cooldown,
// floored to whole hours and minutes. It deliberately ignores bonus
// spins; the UI shows it as supplementary information either way.
// Returns (0, 0) when the account never spun or the window has elapsed.
func TimeUntilNextSpin(lastSpin *time.Time) (hours, minutes int) {
	return timeUntilNextSpinAt(lastSpin, time.Now())
}

func timeUntilNextSpinAt(lastSpin *time.Time, now time.Time) (hours, minutes int) {
	if lastSpin == nil {
		return 0, 0
	}

	remaining := lastSpin.Add(SpinCooldown).Sub(now)
	if remaining <= 0 {
		return 0, 0
	}
	// A spin this very instant leaves exactly the full window; clamp it so
	// the display caps at {23, 59} rather than showing {24, 0}.
	if remaining >= SpinCooldown {
		remaining = SpinCooldown - time.Nanosecond
	}

	hours = int(remaining / time.Hour)
	minutes = int((remaining % time.Hour) / time.Minute)
	return hours, minutes
}
