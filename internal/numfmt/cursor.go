package numfmt

// Reconcile computes where the cursor belongs after the field text was
// reformatted from oldText to newText. prevPos is the cursor offset in oldText
// and deletion tells whether the edit came from backspace. The result is never
// negative; callers clamp it to the new text length.
func Reconcile(cfg Config, prevPos int, oldText, newText string, deletion bool) int {
	cfg = cfg.Normalized()
	oldRunes := []rune(oldText)
	newRunes := []rune(newText)

	if prevPos == len(oldRunes) {
		return len(newRunes)
	}
	pos := prevPos + cursorDelta(cfg, prevPos, oldRunes, newRunes, deletion)
	if pos < 0 {
		return 0
	}
	return pos
}

func cursorDelta(cfg Config, prevPos int, oldText, newText []rune, deletion bool) int {
	sep := cfg.GroupSeparator

	// -2|,321,321 with backspace leaves -,321,321: stay right after the sign
	if len(oldText) > 1 && oldText[0] == '-' && oldText[1] == sep &&
		len(newText) > 0 && newText[0] == '-' {
		return 0
	}

	oldRaw := dropFirst(withoutRune(prefix(oldText, prevPos), sep), '-')
	newRaw := dropFirst(withoutRune(prefix(newText, prevPos), sep), '-')

	// the rune just typed was dropped by the formatter; prevPos already
	// counts it, so step back to where the user was typing
	if containsRune(oldRaw, '-') {
		return -1
	}
	for _, r := range oldRaw {
		if !(r >= '0' && r <= '9') && r != cfg.DecimalMark {
			return -1
		}
	}
	if cfg.StripLeadingZeros && string(oldRaw) == "0" {
		return -1
	}

	oldSuffix := suffix(oldText, prevPos)
	if deletion && string(oldSuffix) != string(suffix(newText, prevPos)) &&
		len(oldSuffix) > 0 && oldSuffix[0] == sep {
		return -1
	}

	switch d := len(oldRaw) - len(newRaw); {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

func prefix(rs []rune, n int) []rune {
	if n < 0 {
		n = 0
	}
	if n > len(rs) {
		n = len(rs)
	}
	return rs[:n]
}

func suffix(rs []rune, n int) []rune {
	if n < 0 {
		n = 0
	}
	if n > len(rs) {
		n = len(rs)
	}
	return rs[n:]
}

func withoutRune(rs []rune, r rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, c := range rs {
		if c != r {
			out = append(out, c)
		}
	}
	return out
}

func dropFirst(rs []rune, r rune) []rune {
	for i, c := range rs {
		if c == r {
			return append(rs[:i:i], rs[i+1:]...)
		}
	}
	return rs
}

func containsRune(rs []rune, r rune) bool {
	for _, c := range rs {
		if c == r {
			return true
		}
	}
	return false
}
