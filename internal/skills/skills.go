// Package skills provides canonical skill-string handling: normalization
// into comparable tokens and splitting of compound skill entries.
package skills

import (
	"strings"
	"unicode"
)

// Normalize converts a raw skill string into its canonical token form:
// lower-cased, whitespace collapsed to single spaces, and restricted to
// the alphabet [a-z0-9 .+#]. All equality checks across the matcher use
// normalized forms exclusively. The function is idempotent.
func Normalize(skill string) string {
	lowered := strings.ToLower(skill)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '+', r == '#':
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// compoundSeparators always split a skill entry into parts.
var compoundSeparators = []rune{'/', '&', ','}

// SplitCompound breaks a combined skill entry ("C/C++", "HTML & CSS",
// "java+sql") into normalized atomic candidates. The plus sign splits only
// when every resulting part is non-empty, so tokens like "c++" stay whole.
// The returned slice never contains empty strings; a plain skill comes back
// as a single-element slice.
func SplitCompound(skill string) []string {
	parts := []string{skill}
	for _, sep := range compoundSeparators {
		parts = splitEach(parts, sep)
	}

	expanded := make([]string, 0, len(parts))
	for _, part := range parts {
		expanded = append(expanded, splitOnPlus(part)...)
	}

	out := make([]string, 0, len(expanded))
	for _, part := range expanded {
		if normalized := Normalize(part); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

func splitEach(parts []string, sep rune) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.FieldsFunc(part, func(r rune) bool { return r == sep })...)
	}
	return out
}

// splitOnPlus splits on '+' unless the split would produce an empty part,
// which keeps plus-suffixed language names ("c++", "g+") intact.
func splitOnPlus(part string) []string {
	if !strings.Contains(part, "+") {
		return []string{part}
	}

	candidates := strings.Split(part, "+")
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			return []string{part}
		}
	}
	return candidates
}
