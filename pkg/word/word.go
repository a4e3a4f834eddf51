// Package word holds unsigned words together with their hex digits.
//
// A Word is built once from a concrete value and never changes: its
// digits are computed at construction and every accessor hands out
// copies, so a Word can be matched from many goroutines at once.
package word

import (
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
)

// Word is an unsigned value of fixed width plus its big-endian digits.
type Word[T any] struct {
	value  T
	width  nibble.Width
	digits []nibble.Nibble
}

// New builds a Word from a built-in unsigned value. The digit count is
// implied by T.
func New[T nibble.Unsigned](v T) Word[T] {
	return From[T](nibble.Machine[T]{}, v)
}

// New128 builds a 32-digit Word.
func New128(v nibble.Uint128) Word[nibble.Uint128] {
	return From[nibble.Uint128](nibble.Wide{}, v)
}

// From builds a Word using an explicit decomposer.
func From[T any](d nibble.Decomposer[T], v T) Word[T] {
	return Word[T]{
		value:  v,
		width:  d.Width(),
		digits: d.Decompose(v),
	}
}

// Value returns the wrapped integer.
func (w Word[T]) Value() T { return w.value }

// Width returns the word size.
func (w Word[T]) Width() nibble.Width { return w.width }

// DigitCount returns the number of hex digits.
func (w Word[T]) DigitCount() int { return len(w.digits) }

// Digits returns a copy of the digits, most-significant first.
func (w Word[T]) Digits() []nibble.Nibble {
	out := make([]nibble.Nibble, len(w.digits))
	copy(out, w.digits)
	return out
}

// Digit returns digit i counted from the left.
func (w Word[T]) Digit(i int) nibble.Nibble { return w.digits[i] }

func (w Word[T]) String() string {
	return nibble.Format(w.digits)
}

// Value is the width-erased view of a Word. Tables and the CLI work with
// words whose width is only known at run time.
type Value interface {
	Width() nibble.Width
	DigitCount() int
	Digits() []nibble.Nibble
	String() string
}

var (
	_ Value = Word[uint8]{}
	_ Value = Word[nibble.Uint128]{}
)

// Match parses text for this word's width and matches it under policy.
func (w Word[T]) Match(text string, policy match.Policy) (bool, error) {
	return match.Match(w, text, policy)
}

// MatchPattern matches an already parsed pattern.
func (w Word[T]) MatchPattern(p pattern.Pattern, policy match.Policy) (bool, error) {
	return match.Resolve(w.digits, p, policy)
}

// Bind matches text and returns the wildcard values.
func (w Word[T]) Bind(text string, policy match.Policy) (match.Binding, bool, error) {
	p, err := pattern.Parse(text, len(w.digits))
	if err != nil {
		return nil, false, err
	}
	return match.Bind(w.digits, p, policy)
}
