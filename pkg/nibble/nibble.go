// Package nibble splits fixed-width unsigned words into their hexadecimal
// digits.
//
// Digits are always returned most-significant first: digit i of an N-digit
// word is (v >> 4*(N-1-i)) & 0xF. The package carries one generic routine
// for Go's built-in unsigned types and a dedicated Uint128 for the 128-bit
// width, both exposed through the Decomposer capability.
package nibble

import (
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/arthur-debert/morsk/pkg/errors"
)

// Nibble is a 4-bit value, 0 through 15.
type Nibble uint8

const hexDigits = "0123456789ABCDEF"

// Valid reports whether n fits in four bits.
func (n Nibble) Valid() bool {
	return n <= 0xF
}

// Rune returns the upper-case hex digit for n.
func (n Nibble) Rune() rune {
	return rune(hexDigits[n&0xF])
}

func (n Nibble) String() string {
	return string(n.Rune())
}

// FromRune returns the value of a hex digit. ok is false for anything
// outside [0-9a-fA-F].
func FromRune(r rune) (n Nibble, ok bool) {
	switch {
	case r >= '0' && r <= '9':
		return Nibble(r - '0'), true
	case r >= 'a' && r <= 'f':
		return Nibble(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return Nibble(r-'A') + 10, true
	}
	return 0, false
}

// Unsigned is the set of built-in unsigned types a word can be held in.
// It is constraints.Unsigned without uint and uintptr, whose width
// depends on the platform and so names no fixed word width.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// DigitsOf returns the hex digit count of T. Any unsigned type is
// accepted, so DigitsOf[uint]() is 8 or 16 depending on the platform.
func DigitsOf[T constraints.Unsigned]() int {
	n := 0
	for v := ^T(0); v != 0; v >>= 4 {
		n++
	}
	return n
}

// Decompose returns the digits of v, most-significant first. The digit
// count follows from T: two for uint8 up to sixteen for uint64.
func Decompose[T Unsigned](v T) []Nibble {
	n := DigitsOf[T]()
	digits := make([]Nibble, n)
	for i := n - 1; i >= 0; i-- {
		digits[i] = Nibble(v & 0xF)
		v >>= 4
	}
	return digits
}

// ComposeAs reads digits most-significant first into T. It fails with
// WORD_OVERFLOW when T has fewer digits than given.
func ComposeAs[T constraints.Unsigned](digits []Nibble) (T, error) {
	if n := DigitsOf[T](); len(digits) > n {
		return 0, errors.Newf(errors.ErrWordOverflow, "%d digits do not fit in %d", len(digits), n).
			WithDetail("digits", len(digits))
	}
	var v T
	for i, d := range digits {
		if !d.Valid() {
			return 0, errors.Newf(errors.ErrInvalidInput, "digit %d out of range: %d", i, d).
				WithDetail("position", i)
		}
		v = v<<4 | T(d)
	}
	return v, nil
}

// Format renders digits as upper-case hex with a 0x prefix.
func Format(digits []Nibble) string {
	var b strings.Builder
	b.Grow(len(digits) + 2)
	b.WriteString("0x")
	for _, d := range digits {
		b.WriteRune(d.Rune())
	}
	return b.String()
}

// Decomposer is the per-width capability used to build words. One
// implementation serves every built-in unsigned type and another serves
// Uint128.
type Decomposer[T any] interface {
	Width() Width
	Decompose(v T) []Nibble
}

// Machine decomposes the built-in unsigned type T.
type Machine[T Unsigned] struct{}

func (Machine[T]) Width() Width {
	w, _ := WidthForDigits(DigitsOf[T]())
	return w
}

func (Machine[T]) Decompose(v T) []Nibble {
	return Decompose(v)
}

// Wide decomposes Uint128 values.
type Wide struct{}

func (Wide) Width() Width { return W128 }

func (Wide) Decompose(v Uint128) []Nibble {
	return v.Digits()
}

var (
	_ Decomposer[uint8]   = Machine[uint8]{}
	_ Decomposer[uint64]  = Machine[uint64]{}
	_ Decomposer[Uint128] = Wide{}
)
