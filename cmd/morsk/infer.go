package morsk

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/word"
)

// inferWidth picks the word width for match when --width is not given.
// The pattern decides when its length is a word width. Otherwise a
// 0x-prefixed word's written digit count is used, then fallback.
func inferWidth(wordText, patternText string, fallback nibble.Width) nibble.Width {
	if w, ok := patternWidth(patternText); ok {
		return w
	}
	if w, ok := writtenWidth(wordText); ok {
		return w
	}
	return fallback
}

// patternWidth is the width a pattern is written for. A leading 0x is
// never a digit.
func patternWidth(text string) (nibble.Width, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text = text[2:]
	}
	w, err := nibble.WidthForDigits(utf8.RuneCountInString(text))
	return w, err == nil
}

func writtenWidth(text string) (nibble.Width, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		return 0, false
	}
	v, err := word.ParseAuto(text)
	if err != nil {
		return 0, false
	}
	return v.Width(), true
}
