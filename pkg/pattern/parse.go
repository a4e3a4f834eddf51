package pattern

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Parse reads a pattern for a word of digitCount hex digits.
//
// A leading radix prefix (0x or 0X) is always stripped before the length
// is checked, and underscores used to group digits are dropped. Text
// whose first two characters must be pattern digits, such as "0XY0",
// goes through ParseDigits instead.
func Parse(text string, digitCount int) (Pattern, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	if rest, ok := cutPrefix(digits); ok {
		digits = rest
	}
	return parseDigits(text, digits, digitCount)
}

// ParseStrict is Parse for callers that require the 0x marker, such as
// table files where a bare word could be mistaken for a name.
func ParseStrict(text string, digitCount int) (Pattern, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	rest, ok := cutPrefix(digits)
	if !ok {
		return Pattern{}, errors.Newf(errors.ErrMissingPrefix, "pattern %q is missing the 0x prefix", text).
			WithDetail("pattern", text)
	}
	return parseDigits(text, rest, digitCount)
}

// ParseDigits reads a pattern with no prefix and no separators: every
// character is one digit position.
func ParseDigits(digits string, digitCount int) (Pattern, error) {
	return parseDigits(digits, digits, digitCount)
}

// MustParse is Parse that panics on error. It is meant for patterns
// written in source code.
func MustParse(text string, digitCount int) Pattern {
	p, err := Parse(text, digitCount)
	if err != nil {
		panic(fmt.Sprintf("pattern: MustParse(%q): %v", text, err))
	}
	return p
}

func parseDigits(text, digits string, digitCount int) (Pattern, error) {
	if n := utf8.RuneCountInString(digits); n != digitCount {
		return Pattern{}, lengthError(text, n, digitCount)
	}

	symbols := make([]Symbol, 0, digitCount)
	pos := 0
	for _, r := range digits {
		switch {
		case r == utf8.RuneError:
			return Pattern{}, charError(text, r, pos)
		case isHex(r):
			n, _ := nibble.FromRune(r)
			symbols = append(symbols, Literal(n))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			symbols = append(symbols, Wildcard(r))
		default:
			return Pattern{}, charError(text, r, pos)
		}
		pos++
	}
	return New(symbols...), nil
}

func isHex(r rune) bool {
	_, ok := nibble.FromRune(r)
	return ok
}

func cutPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}

func charError(text string, r rune, pos int) error {
	return errors.Newf(errors.ErrInvalidCharacter, "invalid character %q at position %d in pattern %q", r, pos, text).
		WithDetail("pattern", text).
		WithDetail("character", string(r)).
		WithDetail("position", pos)
}
