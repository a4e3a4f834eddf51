// Package pattern parses variadic hex patterns such as 0x8XY0.
//
// A pattern has one symbol per hex digit of the word it is matched
// against. Hex digits (0-9, a-f, A-F) are literals; any other letter is
// a wildcard keyed by its upper-case form, so two occurrences of the same
// letter are the same wildcard and different letters are different ones.
// Patterns are immutable once parsed and safe to share between goroutines.
package pattern

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Pattern is an ordered, immutable sequence of symbols.
type Pattern struct {
	symbols []Symbol
	keys    []rune
}

// New builds a pattern from symbols. Wildcard keys are normalized.
func New(symbols ...Symbol) Pattern {
	p := Pattern{symbols: make([]Symbol, len(symbols))}
	seen := make(map[rune]bool)
	for i, s := range symbols {
		if s.IsWildcard() {
			s.Key = NormalizeKey(s.Key)
			if !seen[s.Key] {
				seen[s.Key] = true
				p.keys = append(p.keys, s.Key)
			}
		} else {
			s = Literal(s.Value)
		}
		p.symbols[i] = s
	}
	return p
}

// NormalizeKey maps a wildcard character to its key.
func NormalizeKey(r rune) rune {
	return unicode.ToUpper(r)
}

// Len returns the number of digit positions.
func (p Pattern) Len() int { return len(p.symbols) }

// At returns the symbol at position i, counted from the most-significant digit.
func (p Pattern) At(i int) Symbol { return p.symbols[i] }

// Symbols returns a copy of the symbols.
func (p Pattern) Symbols() []Symbol {
	out := make([]Symbol, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// Keys returns the distinct wildcard keys in order of first occurrence.
func (p Pattern) Keys() []rune {
	out := make([]rune, len(p.keys))
	copy(out, p.keys)
	return out
}

// KeyCount returns the number of distinct wildcard keys.
func (p Pattern) KeyCount() int { return len(p.keys) }

// Positions returns the digit positions holding key.
func (p Pattern) Positions(key rune) []int {
	key = NormalizeKey(key)
	var out []int
	for i, s := range p.symbols {
		if s.IsWildcard() && s.Key == key {
			out = append(out, i)
		}
	}
	return out
}

// IsExact reports whether p has no wildcards.
func (p Pattern) IsExact() bool { return len(p.keys) == 0 }

// Equal reports whether p and q have the same symbols.
func (p Pattern) Equal(q Pattern) bool {
	if len(p.symbols) != len(q.symbols) {
		return false
	}
	for i := range p.symbols {
		if p.symbols[i] != q.symbols[i] {
			return false
		}
	}
	return true
}

// String renders p in canonical form: a 0x prefix, upper-case literals
// and upper-case wildcard keys.
func (p Pattern) String() string {
	var b strings.Builder
	b.WriteString("0x")
	for _, s := range p.symbols {
		b.WriteString(s.String())
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Mask returns the literal digits of p as a value/mask pair over
// digitCount digits: mask has 0xF at every literal position and value holds
// the required digits. A word w satisfies the literal part of p exactly
// when w&mask == value.
func (p Pattern) Mask() (value, mask nibble.Uint128, err error) {
	vd := make([]nibble.Nibble, len(p.symbols))
	md := make([]nibble.Nibble, len(p.symbols))
	for i, s := range p.symbols {
		if !s.IsWildcard() {
			vd[i] = s.Value
			md[i] = 0xF
		}
	}
	if value, err = nibble.Compose(vd); err != nil {
		return nibble.Uint128{}, nibble.Uint128{}, err
	}
	if mask, err = nibble.Compose(md); err != nil {
		return nibble.Uint128{}, nibble.Uint128{}, err
	}
	return value, mask, nil
}

// lengthError reports a pattern whose digit count does not fit the word.
func lengthError(text string, got, want int) error {
	return errors.Newf(errors.ErrLengthMismatch, "pattern %q has %d digits, expected %d", text, got, want).
		WithDetail("pattern", text).
		WithDetail("digits", got).
		WithDetail("expected", want)
}
