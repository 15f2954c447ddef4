package tui

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCredits adds thousand separators to a numeric cost_in_credits value.
// SWAPI uses "unknown" and similar words for missing values; those pass through.
func FormatCredits(cost string) string {
	trimmed := strings.TrimSpace(cost)
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		if trimmed == "" {
			return "unknown"
		}
		return trimmed
	}
	return printer.Sprintf("%d", n)
}

// romanNumerals covers the nine saga episodes.
//
//nolint:gochecknoglobals // Lookup table.
var romanNumerals = []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}

// EpisodeLabel renders an episode id as "Episode IV". Ids outside 1..9 use digits.
func EpisodeLabel(episode int) string {
	if episode > 0 && episode < len(romanNumerals) {
		return "Episode " + romanNumerals[episode]
	}
	return "Episode " + strconv.Itoa(episode)
}

// truncate shortens s to n runes, ending with "...".
func truncate(s string, n int) string {
	const suffix = "..."
	r := []rune(s)
	if len(r) <= n || n <= len(suffix) {
		return s
	}
	return string(r[:n-len(suffix)]) + suffix
}
