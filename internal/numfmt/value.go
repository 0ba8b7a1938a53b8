package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value reads the number shown in a display text. Only digits, minus signs and
// the decimal mark are considered; the longest leading -?digits[.digits] run
// of what remains is parsed. Text without such a run yields zero.
func Value(text string, cfg Config) decimal.Decimal {
	cfg = cfg.Normalized()

	var kept strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == '-':
			kept.WriteRune(r)
		case r == cfg.DecimalMark:
			kept.WriteByte('.')
		}
	}

	lit, ok := numericPrefix(kept.String())
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float is Value converted to float64; precision beyond that is not kept.
func Float(text string, cfg Config) float64 {
	return Value(text, cfg).InexactFloat64()
}

// numericPrefix extracts a decimal literal from the start of s and rewrites
// it into a form decimal.NewFromString accepts (".5" -> "0.5", "5." -> "5").
func numericPrefix(s string) (string, bool) {
	i := 0
	neg := false
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	intDigits := s[start:i]

	var fracDigits string
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		fracDigits = s[start:i]
	}
	if intDigits == "" && fracDigits == "" {
		return "", false
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if intDigits == "" {
		b.WriteByte('0')
	}
	b.WriteString(intDigits)
	if fracDigits != "" {
		b.WriteByte('.')
		b.WriteString(fracDigits)
	}
	return b.String(), true
}
