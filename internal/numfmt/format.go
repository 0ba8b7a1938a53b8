package numfmt

import "strings"

// Formatter turns raw field text into its display form.
type Formatter struct {
	cfg Config
}

func New(cfg Config) *Formatter {
	return &Formatter{cfg: cfg.Normalized()}
}

func (f *Formatter) Config() Config {
	return f.cfg
}

// Format parses raw and renders the result. Format(Format(x)) == Format(x).
func (f *Formatter) Format(raw string) string {
	return f.Render(Parse(raw, f.cfg))
}

// Render is total: every token maps to exactly one display string.
func (f *Formatter) Render(tok Token) string {
	var b strings.Builder
	if tok.Sign == Negative && f.cfg.AllowNegative {
		b.WriteByte('-')
	}
	b.WriteString(group(tok.Integer, f.cfg.Grouping, f.cfg.GroupSeparator))
	if tok.HasDecimalMark && f.cfg.DecimalsEnabled() {
		b.WriteRune(f.cfg.DecimalMark)
		b.WriteString(truncate(tok.Decimal, f.cfg.DecimalLimit))
	}
	return b.String()
}

// groupSizes returns the size of the least significant group and of every
// group after it.
func groupSizes(style GroupingStyle) (first, rest int) {
	switch style {
	case GroupThousand:
		return 3, 3
	case GroupTenThousand:
		return 4, 4
	case GroupThousandLakhCrore:
		return 3, 2
	}
	return 0, 0
}

func group(digits string, style GroupingStyle, sep rune) string {
	first, rest := groupSizes(style)
	if first == 0 || len(digits) <= first {
		return digits
	}

	// cut points counted from the right, collected left to right afterwards
	var cuts []int
	pos := len(digits) - first
	for pos > 0 {
		cuts = append(cuts, pos)
		pos -= rest
	}

	var b strings.Builder
	b.Grow(len(digits) + len(cuts))
	start := 0
	for i := len(cuts) - 1; i >= 0; i-- {
		b.WriteString(digits[start:cuts[i]])
		b.WriteRune(sep)
		start = cuts[i]
	}
	b.WriteString(digits[start:])
	return b.String()
}
