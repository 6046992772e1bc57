package render

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCurrency renders an amount with the configured symbol and
// thousands grouping, e.g. "€1,162.50".
func formatCurrency(symbol string, v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := symbol + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatHours renders hours with one decimal, dropping a trailing .0
// ("8", "7.5").
func formatHours(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
