package cot

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Round formats a score in [0, 1] as a percentage with one decimal place.
// Every numeric cell of every view goes through it.
func Round(score float64) string {
	return printer.Sprintf("%.1f", score*100)
}

const zeroWidthSpace = "\u200b"

// AllowLineBreaks lets long identifiers wrap at any character by interleaving
// zero-width spaces.
func AllowLineBreaks(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			b.WriteString(zeroWidthSpace)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripLineBreaks undoes AllowLineBreaks.
func StripLineBreaks(s string) string {
	return strings.ReplaceAll(s, zeroWidthSpace, "")
}
