// Package numfmt parses, groups and renders numbers as they are typed, and
// keeps the cursor in place while the text is rewritten.
package numfmt

import (
	"fmt"
	"time"
)

// GroupingStyle selects how the integer digit run is split into groups.
type GroupingStyle int

const (
	GroupNone GroupingStyle = iota
	GroupThousand
	GroupTenThousand
	GroupThousandLakhCrore
)

// Unlimited disables a digit limit.
const Unlimited = -1

const (
	DefaultDebounce        = 300 * time.Millisecond
	DefaultMaxHistoryDepth = 500
)

var styleNames = map[GroupingStyle]string{
	GroupNone:              "none",
	GroupThousand:          "thousand",
	GroupTenThousand:       "tenThousand",
	GroupThousandLakhCrore: "thousandLakhCrore",
}

func (g GroupingStyle) String() string {
	if name, ok := styleNames[g]; ok {
		return name
	}
	return fmt.Sprintf("GroupingStyle(%d)", int(g))
}

// ParseGroupingStyle maps a configuration name to a GroupingStyle.
func ParseGroupingStyle(name string) (GroupingStyle, error) {
	for style, n := range styleNames {
		if n == name {
			return style, nil
		}
	}
	return GroupNone, fmt.Errorf("unknown format style %q", name)
}

// Config is fixed for the lifetime of a formatter instance.
type Config struct {
	DecimalMark             rune
	GroupSeparator          rune
	Grouping                GroupingStyle
	AllowNegative           bool
	IntegerLimit            int
	DecimalLimit            int
	StripLeadingZeros       bool
	AllowDecimalReplacement bool
	Debounce                time.Duration
	MaxHistoryDepth         int
}

func DefaultConfig() Config {
	return Config{
		DecimalMark:     '.',
		GroupSeparator:  ',',
		Grouping:        GroupThousand,
		AllowNegative:   true,
		IntegerLimit:    Unlimited,
		DecimalLimit:    Unlimited,
		Debounce:        DefaultDebounce,
		MaxHistoryDepth: DefaultMaxHistoryDepth,
	}
}

// Normalized fills zero values with defaults.
func (c Config) Normalized() Config {
	if c.DecimalMark == 0 {
		c.DecimalMark = '.'
	}
	if c.GroupSeparator == 0 {
		c.GroupSeparator = ','
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.MaxHistoryDepth <= 0 {
		c.MaxHistoryDepth = DefaultMaxHistoryDepth
	}
	if c.IntegerLimit < 0 {
		c.IntegerLimit = Unlimited
	}
	if c.DecimalLimit < 0 {
		c.DecimalLimit = Unlimited
	}
	return c
}

// DecimalsEnabled reports whether a decimal part can ever be shown.
func (c Config) DecimalsEnabled() bool {
	return c.DecimalLimit != 0
}

// IntegerFull reports whether n integer digits already fill the integer limit,
// so another digit typed into the integer part must be refused.
func (c Config) IntegerFull(n int) bool {
	return reached(n, c.IntegerLimit)
}

// DecimalFull is IntegerFull for the decimal part.
func (c Config) DecimalFull(n int) bool {
	return reached(n, c.DecimalLimit)
}

func reached(count, limit int) bool {
	return limit >= 0 && count >= limit
}

func truncate(digits string, limit int) string {
	if limit == Unlimited || len(digits) <= limit {
		return digits
	}
	return digits[:limit]
}
