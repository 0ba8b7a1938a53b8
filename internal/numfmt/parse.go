package numfmt

import "strings"

type Sign int

const (
	Positive Sign = iota
	Negative
)

// Token is the canonical, separator-free form of a number being edited.
// Integer and Decimal only ever hold the ASCII digits 0-9.
type Token struct {
	Sign           Sign
	Integer        string
	Decimal        string
	HasDecimalMark bool
}

// Parse scrubs arbitrary text down to a Token. Letters and foreign symbols are
// dropped, only the first decimal mark survives, and any minus sign anywhere in
// the input becomes a single leading sign (or nothing when negatives are off).
// Digit runs are truncated, not rounded, to the configured limits.
func Parse(raw string, cfg Config) Token {
	cfg = cfg.Normalized()

	var (
		tok      Token
		negative bool
		intPart  strings.Builder
		decPart  strings.Builder
	)
	for _, r := range raw {
		switch {
		case r == cfg.DecimalMark && !tok.HasDecimalMark:
			tok.HasDecimalMark = true
		case r >= '0' && r <= '9':
			if tok.HasDecimalMark {
				decPart.WriteRune(r)
			} else {
				intPart.WriteRune(r)
			}
		case r == '-':
			negative = true
		}
	}
	if negative && cfg.AllowNegative {
		tok.Sign = Negative
	}

	integer := intPart.String()
	if cfg.StripLeadingZeros {
		integer = stripZeros(integer)
	}
	tok.Integer = truncate(integer, cfg.IntegerLimit)
	tok.Decimal = truncate(decPart.String(), cfg.DecimalLimit)
	return tok
}

// stripZeros removes leading zeros that are followed by another digit, so
// "007" becomes "7" while "0" and the "0" of "0.5" are kept.
func stripZeros(integer string) string {
	n := 0
	for n < len(integer) && integer[n] == '0' {
		n++
	}
	if n == 0 {
		return integer
	}
	if n == len(integer) {
		return "0"
	}
	return integer[n:]
}

// OnlyZeros reports whether text holds nothing but zeros and group separators.
// An empty text also qualifies.
func OnlyZeros(text string, cfg Config) bool {
	cfg = cfg.Normalized()
	for _, r := range text {
		if r != '0' && r != cfg.GroupSeparator {
			return false
		}
	}
	return true
}
