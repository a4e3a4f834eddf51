package word

import (
	"strings"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Parse reads a word of width w from text. Hex (0x), octal (0o), binary
// (0b) and plain decimal are accepted, with underscores between digits.
// Values that do not fit in w are rejected rather than truncated.
func Parse(text string, w nibble.Width) (Value, error) {
	if !w.Valid() {
		return nil, errors.Newf(errors.ErrInvalidWidth, "unsupported width %d", int(w)).
			WithDetail("width", int(w))
	}

	u, err := nibble.ParseUint128(text, 0)
	if err != nil {
		return nil, err
	}
	if !u.Fits(w) {
		return nil, errors.Newf(errors.ErrWordOverflow, "word %s does not fit in %s", text, w).
			WithDetail("word", text).
			WithDetail("width", w.String())
	}

	switch w {
	case nibble.W8:
		return New(uint8(u.Lo)), nil
	case nibble.W16:
		return New(uint16(u.Lo)), nil
	case nibble.W32:
		return New(uint32(u.Lo)), nil
	case nibble.W64:
		return New(u.Lo), nil
	default:
		return New128(u), nil
	}
}

// ParseAuto reads a hex word and takes its width from the digit count
// written, so "0x00E0" is a 16-bit word. Text that is not 0x-prefixed or
// whose digit count is not a supported width falls back to the narrowest
// width the value fits in.
func ParseAuto(text string) (Value, error) {
	u, err := nibble.ParseUint128(text, 0)
	if err != nil {
		return nil, err
	}
	if n := writtenHexDigits(strings.TrimSpace(text)); n > 0 {
		if w, err := nibble.WidthForDigits(n); err == nil {
			return Parse(text, w)
		}
	}
	for _, w := range nibble.Widths {
		if u.Fits(w) {
			return Parse(text, w)
		}
	}
	return New128(u), nil
}

func writtenHexDigits(text string) int {
	if len(text) < 2 || text[0] != '0' || (text[1] != 'x' && text[1] != 'X') {
		return 0
	}
	n := 0
	for _, r := range text[2:] {
		if r != '_' {
			n++
		}
	}
	return n
}
