// Package common holds small utilities shared by the bot and the HTTP API.
package common

import "fmt"

// FormatNumber renders n with space-separated thousands.
// Example: FormatNumber(12500) → "12 500"
func FormatNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return sign + string(out)
}

// FormatCoins renders a coin amount for bot messages.
// Example: FormatCoins(650) → "650 coins"
func FormatCoins(n int64) string {
	if n == 1 {
		return "1 coin"
	}
	return fmt.Sprintf("%s coins", FormatNumber(n))
}

// FormatCooldown renders the remaining cooldown as "23h 59m".
func FormatCooldown(hours, minutes int) string {
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
