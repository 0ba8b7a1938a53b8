package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfig(mut func(*Config)) *Formatter {
	cfg := DefaultConfig()
	if mut != nil {
		mut(&cfg)
	}
	return New(cfg)
}

func TestFormatGrouping(t *testing.T) {
	tests := []struct {
		name  string
		style GroupingStyle
		in    string
		want  string
	}{
		{"thousand", GroupThousand, "1234567", "1,234,567"},
		{"thousand short", GroupThousand, "123", "123"},
		{"thousand exact", GroupThousand, "123456", "123,456"},
		{"ten thousand", GroupTenThousand, "12345678", "1234,5678"},
		{"ten thousand odd", GroupTenThousand, "123456789", "1,2345,6789"},
		{"lakh crore", GroupThousandLakhCrore, "1234567", "12,34,567"},
		{"lakh crore long", GroupThousandLakhCrore, "123456789", "12,34,56,789"},
		{"lakh crore small", GroupThousandLakhCrore, "1234", "1,234"},
		{"none", GroupNone, "1234567", "1234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := withConfig(func(c *Config) { c.Grouping = tt.style })
			assert.Equal(t, tt.want, f.Format(tt.in))
		})
	}
}

func TestFormatNormalizesInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"letters stripped", "12abc34", "1,234"},
		{"symbols stripped", "$1 2#3", "123"},
		{"existing separators cleared", "1,2,3,4", "1,234"},
		{"second decimal mark dropped", "1.2.3", "1.23"},
		{"leading decimal", ".5", ".5"},
		{"trailing decimal", "12.", "12."},
		{"sign kept", "-1234", "-1,234"},
		{"minus in the middle moves to front", "12-34", "-1,234"},
		{"many minus signs collapse", "--1-2", "-12"},
		{"sign only", "-", "-"},
		{"decimals untouched by grouping", "1234.5678", "1,234.5678"},
	}
	f := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.in))
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{"", "0", "007", "-0.50", "1234567.891", "abc-12,3.4.5", "--", ".", "9,99,999"}
	configs := map[string]*Formatter{
		"default":  New(DefaultConfig()),
		"lakh":     withConfig(func(c *Config) { c.Grouping = GroupThousandLakhCrore }),
		"strip":    withConfig(func(c *Config) { c.StripLeadingZeros = true }),
		"scaled":   withConfig(func(c *Config) { c.IntegerLimit = 4; c.DecimalLimit = 1 }),
		"positive": withConfig(func(c *Config) { c.AllowNegative = false }),
		"european": withConfig(func(c *Config) { c.DecimalMark = ','; c.GroupSeparator = '.' }),
	}
	for name, f := range configs {
		for _, in := range inputs {
			once := f.Format(in)
			assert.Equal(t, once, f.Format(once), "%s: input %q", name, in)
		}
	}
}

func TestFormatSignPolicy(t *testing.T) {
	f := withConfig(func(c *Config) { c.AllowNegative = false })
	assert.Equal(t, "42", f.Format("-42"))
	assert.Equal(t, "42", f.Format("4-2"))
	assert.Equal(t, Positive, Parse("-42", f.Config()).Sign)
}

func TestFormatScaleLimits(t *testing.T) {
	f := withConfig(func(c *Config) { c.IntegerLimit = 3 })
	assert.Equal(t, "123", f.Format("123456"))
	assert.Equal(t, "-123", f.Format("-123456"))

	f = withConfig(func(c *Config) { c.DecimalLimit = 2 })
	assert.Equal(t, "1.23", f.Format("1.2345"))
	assert.Equal(t, "1.23", f.Format("1.239"), "truncation, not rounding")
}

func TestFormatDecimalScaleZero(t *testing.T) {
	f := withConfig(func(c *Config) { c.DecimalLimit = 0 })
	assert.Equal(t, "12", f.Format("12.34"))
	assert.Equal(t, "1,234", f.Format("1234."))
	tok := Parse("1.5", f.Config())
	assert.True(t, tok.HasDecimalMark)
	assert.Empty(t, tok.Decimal)
}

func TestFormatStripLeadingZeros(t *testing.T) {
	f := withConfig(func(c *Config) { c.StripLeadingZeros = true })
	tests := map[string]string{
		"007":   "7",
		"0":     "0",
		"000":   "0",
		"0.5":   "0.5",
		"00.5":  "0.5",
		"-0012": "-12",
		"0,001": "1",
		"100":   "100",
		".5":    ".5",
	}
	for in, want := range tests {
		assert.Equal(t, want, f.Format(in), "input %q", in)
	}

	keep := New(DefaultConfig())
	assert.Equal(t, "0,007", keep.Format("0007"))
}

func TestFormatCustomMarks(t *testing.T) {
	f := withConfig(func(c *Config) { c.DecimalMark = ','; c.GroupSeparator = '.' })
	assert.Equal(t, "1.234.567,89", f.Format("1234567,89"))
	assert.Equal(t, "1.234,5", f.Format("1.234,5"))
}

func TestParseToken(t *testing.T) {
	tok := Parse("-1,234.50", DefaultConfig())
	require.Equal(t, Token{Sign: Negative, Integer: "1234", Decimal: "50", HasDecimalMark: true}, tok)

	tok = Parse("x", DefaultConfig())
	require.Equal(t, Token{}, tok)
}

func TestParseGroupingStyle(t *testing.T) {
	for _, name := range []string{"none", "thousand", "tenThousand", "thousandLakhCrore"} {
		style, err := ParseGroupingStyle(name)
		require.NoError(t, err)
		assert.Equal(t, name, style.String())
	}
	_, err := ParseGroupingStyle("lakh")
	assert.Error(t, err)
}

func TestOnlyZeros(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, OnlyZeros("", cfg))
	assert.True(t, OnlyZeros("0,000,000", cfg))
	assert.True(t, OnlyZeros(",000", cfg))
	assert.False(t, OnlyZeros("0.0", cfg))
	assert.False(t, OnlyZeros("10", cfg))
}

func TestValue(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"1,234.5", 1234.5},
		{"-1,234.5", -1234.5},
		{"-", 0},
		{".5", 0.5},
		{"-.25", -0.25},
		{"12.", 12},
		{"abc", 0},
		{"1-2", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Float(tt.in, cfg), "input %q", tt.in)
	}

	eu := cfg
	eu.DecimalMark = ','
	eu.GroupSeparator = '.'
	assert.Equal(t, "1234.56", Value("1.234,56", eu).String())
}

func TestLimitsFull(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IntegerFull(1000))
	assert.False(t, cfg.DecimalFull(1000))

	cfg.IntegerLimit = 3
	cfg.DecimalLimit = 0
	assert.False(t, cfg.IntegerFull(2))
	assert.True(t, cfg.IntegerFull(3))
	assert.True(t, cfg.DecimalFull(0))
}
