package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/livenum/internal/numfmt"
)

const (
	ActionUndo      = "undo"
	ActionRedo      = "redo"
	ActionPaste     = "paste"
	ActionSelectAll = "select_all"
	ActionQuit      = "quit"
)

// Format holds the options of a live number formatter.
// Negative scales mean unlimited.
type Format struct {
	DebounceTime            int    `toml:"debounce-time"`
	AllowNegative           bool   `toml:"allow-negative"`
	FormatStyle             string `toml:"format-style"`
	DecimalScale            int    `toml:"decimal-scale"`
	IntegerScale            int    `toml:"integer-scale"`
	StripLeadingZeroes      bool   `toml:"strip-leading-zeroes"`
	AllowDecimalReplacement bool   `toml:"allow-decimal-replacement"`
	MaxUndoStackSize        int    `toml:"max-undo-stack-size"`
	DecimalMark             string `toml:"decimal-mark"`
	Delimiter               string `toml:"delimiter"`
}

type FieldOptions struct {
	Name        string `toml:"name"`
	Label       string `toml:"label"`
	Width       int    `toml:"width"`
	RestoreLast bool   `toml:"restore-last"`
}

type Theme struct {
	Theme               string `toml:"theme"`
	Foreground          string `toml:"foreground"`
	Background          string `toml:"background"`
	LabelForeground     string `toml:"label-foreground"`
	FieldForeground     string `toml:"field-foreground"`
	FieldBackground     string `toml:"field-background"`
	SelectionForeground string `toml:"selection-foreground"`
	SelectionBackground string `toml:"selection-background"`
	StatusForeground    string `toml:"status-foreground"`
	StatusBackground    string `toml:"status-background"`
}

type Config struct {
	Format Format            `toml:"format"`
	Field  FieldOptions      `toml:"field"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Format: Format{
			DebounceTime:     300,
			AllowNegative:    true,
			FormatStyle:      "thousand",
			DecimalScale:     numfmt.Unlimited,
			IntegerScale:     numfmt.Unlimited,
			MaxUndoStackSize: 500,
			DecimalMark:      ".",
			Delimiter:        ",",
		},
		Field: FieldOptions{
			Name:        "amount",
			Label:       "Amount",
			Width:       24,
			RestoreLast: true,
		},
		Theme: Theme{
			Foreground:          "#B3B1AD",
			Background:          "#0A0E14",
			LabelForeground:     "#59C2FF",
			FieldForeground:     "#E6E1CF",
			FieldBackground:     "#0F1419",
			SelectionForeground: "#B3B1AD",
			SelectionBackground: "#27425A",
			StatusForeground:    "#B3B1AD",
			StatusBackground:    "#0F1419",
		},
		Keymap: map[string]string{
			"ctrl+z":       ActionUndo,
			"ctrl+y":       ActionRedo,
			"ctrl+shift+z": ActionRedo,
			"ctrl+v":       ActionPaste,
			"ctrl+a":       ActionSelectAll,
			"ctrl+c":       ActionQuit,
			"esc":          ActionQuit,
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	mergeFormat(&cfg.Format, userCfg.Format, md)

	if userCfg.Field.Name != "" {
		cfg.Field.Name = userCfg.Field.Name
	}
	if userCfg.Field.Label != "" {
		cfg.Field.Label = userCfg.Field.Label
	}
	if userCfg.Field.Width > 0 {
		cfg.Field.Width = userCfg.Field.Width
	}
	if md.IsDefined("field", "restore-last") {
		cfg.Field.RestoreLast = userCfg.Field.RestoreLast
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	if _, err := cfg.Format.NumFmt(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeFormat copies every key the user file defines, so explicit false and
// zero values override the defaults.
func mergeFormat(dst *Format, src Format, md toml.MetaData) {
	if md.IsDefined("format", "debounce-time") {
		dst.DebounceTime = src.DebounceTime
	}
	if md.IsDefined("format", "allow-negative") {
		dst.AllowNegative = src.AllowNegative
	}
	if md.IsDefined("format", "format-style") {
		dst.FormatStyle = src.FormatStyle
	}
	if md.IsDefined("format", "decimal-scale") {
		dst.DecimalScale = src.DecimalScale
	}
	if md.IsDefined("format", "integer-scale") {
		dst.IntegerScale = src.IntegerScale
	}
	if md.IsDefined("format", "strip-leading-zeroes") {
		dst.StripLeadingZeroes = src.StripLeadingZeroes
	}
	if md.IsDefined("format", "allow-decimal-replacement") {
		dst.AllowDecimalReplacement = src.AllowDecimalReplacement
	}
	if md.IsDefined("format", "max-undo-stack-size") {
		dst.MaxUndoStackSize = src.MaxUndoStackSize
	}
	if src.DecimalMark != "" {
		dst.DecimalMark = src.DecimalMark
	}
	if src.Delimiter != "" {
		dst.Delimiter = src.Delimiter
	}
}

// NumFmt converts the options into a formatter config. A debounce time or
// undo stack size of zero falls back to the defaults.
func (f Format) NumFmt() (numfmt.Config, error) {
	style, err := numfmt.ParseGroupingStyle(f.FormatStyle)
	if err != nil {
		return numfmt.Config{}, err
	}
	mark, err := singleRune("decimal-mark", f.DecimalMark)
	if err != nil {
		return numfmt.Config{}, err
	}
	delim, err := singleRune("delimiter", f.Delimiter)
	if err != nil {
		return numfmt.Config{}, err
	}
	if mark == delim {
		return numfmt.Config{}, fmt.Errorf("decimal-mark and delimiter are both %q", f.DecimalMark)
	}
	if mark == '-' || delim == '-' || (mark >= '0' && mark <= '9') || (delim >= '0' && delim <= '9') {
		return numfmt.Config{}, fmt.Errorf("decimal-mark and delimiter must not be digits or '-'")
	}
	cfg := numfmt.Config{
		DecimalMark:             mark,
		GroupSeparator:          delim,
		Grouping:                style,
		AllowNegative:           f.AllowNegative,
		IntegerLimit:            f.IntegerScale,
		DecimalLimit:            f.DecimalScale,
		StripLeadingZeros:       f.StripLeadingZeroes,
		AllowDecimalReplacement: f.AllowDecimalReplacement,
		Debounce:                time.Duration(f.DebounceTime) * time.Millisecond,
		MaxHistoryDepth:         f.MaxUndoStackSize,
	}
	return cfg.Normalized(), nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.LabelForeground != "" {
		dst.LabelForeground = src.LabelForeground
	}
	if src.FieldForeground != "" {
		dst.FieldForeground = src.FieldForeground
	}
	if src.FieldBackground != "" {
		dst.FieldBackground = src.FieldBackground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.StatusForeground != "" {
		dst.StatusForeground = src.StatusForeground
	}
	if src.StatusBackground != "" {
		dst.StatusBackground = src.StatusBackground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("LIVENUM_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "livenum"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "livenum"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
