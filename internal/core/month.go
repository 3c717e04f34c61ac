package core

import (
	"strconv"
	"strings"
)

// Months holds the canonical month names, 0-indexed (Months[0] = Janeiro).
var Months = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthCurrent is the sentinel returned when no month filter was given.
const MonthCurrent = "Atual"

// NormalizeMonth converts a month filter from the classifier into a canonical
// month name. The resolution order is load-bearing:
//
//  1. empty input returns the current-period sentinel;
//  2. digits extracted from the input, if in 1..12, select by index;
//  3. a case-insensitive substring match against the canonical names, in
//     either direction, selects the first matching name;
//  4. anything else passes through unchanged.
func NormalizeMonth(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return MonthCurrent
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if s := digits.String(); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
			return Months[n-1]
		}
	}

	lower := strings.ToLower(raw)
	for _, m := range Months {
		ml := strings.ToLower(m)
		if strings.Contains(ml, lower) || strings.Contains(lower, ml) {
			return m
		}
	}

	return raw
}
