// Package mask removes title-identifying text from review bodies so a served
// clue never names the game it describes.
package mask

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Token replaces every masked occurrence.
const Token = "***"

// Fragments at or below this many runes are connector words ("of", "the",
// "II") and stay unmasked.
const minFragmentRunes = 3

var fragmentSplitter = regexp.MustCompile(`[\s:\-]+`)

// Mask replaces every case-insensitive occurrence of title, and of each
// significant fragment of title, with the masking token. The title is treated
// as literal text; pattern metacharacters in it have no effect.
func Mask(text, title string) string {
	if strings.TrimSpace(title) == "" {
		return text
	}
	masked := replaceLiteral(text, title)
	for _, part := range Fragments(title) {
		masked = replaceLiteral(masked, part)
	}
	return masked
}

// Fragments returns the significant pieces of a title, split on whitespace,
// colons and hyphens.
func Fragments(title string) []string {
	var out []string
	for _, p := range fragmentSplitter.Split(title, -1) {
		if utf8.RuneCountInString(p) > minFragmentRunes {
			out = append(out, p)
		}
	}
	return out
}

func replaceLiteral(text, target string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))
	return re.ReplaceAllLiteralString(text, Token)
}
