package nibble

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/morsk/pkg/errors"
)

// Width is a word size in bits.
type Width int

const (
	W8   Width = 8
	W16  Width = 16
	W32  Width = 32
	W64  Width = 64
	W128 Width = 128
)

// Widths lists every supported width, narrowest first.
var Widths = []Width{W8, W16, W32, W64, W128}

// Bits returns the bit count.
func (w Width) Bits() int { return int(w) }

// Digits returns the hex digit count.
func (w Width) Digits() int { return int(w) / 4 }

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	for _, known := range Widths {
		if w == known {
			return true
		}
	}
	return false
}

func (w Width) String() string {
	return "u" + strconv.Itoa(int(w))
}

// MarshalText implements encoding.TextMarshaler.
func (w Width) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, errors.Newf(errors.ErrInvalidWidth, "unsupported width %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Width) UnmarshalText(text []byte) error {
	parsed, err := ParseWidth(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ParseWidth accepts a bit count with an optional u or uint prefix:
// "16", "u16" and "uint16" all name W16.
func ParseWidth(s string) (Width, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	text = strings.TrimPrefix(text, "uint")
	text = strings.TrimPrefix(text, "u")

	bits, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidWidth, "invalid width %q", s).
			WithDetail("width", s)
	}
	w := Width(bits)
	if !w.Valid() {
		return 0, errors.Newf(errors.ErrInvalidWidth, "unsupported width %q (want 8, 16, 32, 64 or 128)", s).
			WithDetail("width", s)
	}
	return w, nil
}

// WidthForDigits returns the width holding exactly n hex digits.
func WidthForDigits(n int) (Width, error) {
	w := Width(n * 4)
	if !w.Valid() {
		return 0, errors.Newf(errors.ErrInvalidWidth, "no word has %d hex digits", n).
			WithDetail("digits", n)
	}
	return w, nil
}
