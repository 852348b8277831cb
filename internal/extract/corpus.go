package extract

import (
	"strings"
	"unicode/utf8"
)

// minLineLength is the shortest trimmed line kept in the corpus. Shorter
// lines are almost always OCR debris such as stray glyphs from borders.
const minLineLength = 3

// Sanitize replaces vertical bars with spaces. OCR engines commonly read
// the rules between printed fields as '|'.
func Sanitize(text string) string {
	return strings.ReplaceAll(text, "|", " ")
}

// Lines returns the sanitized text split into trimmed lines, dropping lines
// of two characters or fewer. Order is preserved.
func Lines(text string) []string {
	raw := strings.Split(Sanitize(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minLineLength {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
