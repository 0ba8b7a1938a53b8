package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		mut      func(*Config)
		prevPos  int
		oldText  string
		newText  string
		deletion bool
		want     int
	}{
		{
			name:    "cursor at end follows the end",
			prevPos: 6, oldText: "123456", newText: "123,456",
			want: 7,
		},
		{
			name:    "cursor at end after backspace",
			prevPos: 5, oldText: "12,34", newText: "1,234", deletion: true,
			want: 5,
		},
		{
			name:    "separator appears before cursor",
			prevPos: 3, oldText: "1293,456", newText: "1,293,456",
			want: 4,
		},
		{
			name:    "grouping unchanged before cursor",
			prevPos: 2, oldText: "15,234", newText: "15,234",
			want: 2,
		},
		{
			name:    "separator collapses under backspace",
			prevPos: 4, oldText: "1,23,567", newText: "123,567", deletion: true,
			want: 3,
		},
		{
			name:    "backspace inside a group",
			prevPos: 3, oldText: "12,45", newText: "1,245", deletion: true,
			want: 3,
		},
		{
			name:    "separator disappears before cursor",
			prevPos: 2, oldText: "1,34", newText: "134", deletion: true,
			want: 1,
		},
		{
			name:    "invalid character typed",
			prevPos: 2, oldText: "1a23", newText: "123",
			want: 1,
		},
		{
			name:    "second minus typed",
			prevPos: 3, oldText: "-1-23", newText: "-123",
			want: 2,
		},
		{
			name:    "leading zero with stripping",
			mut:     func(c *Config) { c.StripLeadingZeros = true },
			prevPos: 1, oldText: "05", newText: "5",
			want: 0,
		},
		{
			name:    "dropped rune inside a group",
			prevPos: 4, oldText: "1,2x34", newText: "1,234",
			want: 3,
		},
		{
			name:    "negative sign followed by separator",
			prevPos: 1, oldText: "-,321,321", newText: "-321,321", deletion: true,
			want: 1,
		},
		{
			name:    "never negative",
			prevPos: 0, oldText: ",123", newText: "123", deletion: true,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mut != nil {
				tt.mut(&cfg)
			}
			got := Reconcile(cfg, tt.prevPos, tt.oldText, tt.newText, tt.deletion)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcileEndStableForAnyInput(t *testing.T) {
	f := New(DefaultConfig())
	for _, typed := range []string{"1", "12", "1234", "-98765", "1234.5", "12a", "0.000"} {
		out := f.Format(typed)
		got := Reconcile(f.Config(), len([]rune(typed)), typed, out, false)
		assert.Equal(t, len([]rune(out)), got, "typed %q", typed)
	}
}
