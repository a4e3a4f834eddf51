package nibble

import (
	"math/big"
	"strings"

	"github.com/arthur-debert/morsk/pkg/errors"
)

// Uint128 is an unsigned 128-bit word split into two 64-bit halves.
type Uint128 struct {
	Hi, Lo uint64
}

// Max128 is the largest Uint128.
var Max128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// Uint128From64 widens v.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Shr shifts u right by n bits.
func (u Uint128) Shr(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	default:
		return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}
	}
}

// Shl shifts u left by n bits.
func (u Uint128) Shl(n uint) Uint128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	default:
		return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
	}
}

// Or returns u | v.
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

// Fits reports whether u is representable in w.
func (u Uint128) Fits(w Width) bool {
	if w == W128 {
		return true
	}
	return u.Hi == 0 && u.Lo>>uint(w.Bits()) == 0
}

// Digits returns all 32 hex digits of u, most-significant first.
func (u Uint128) Digits() []Nibble {
	digits := make([]Nibble, W128.Digits())
	copy(digits, Decompose(u.Hi))
	copy(digits[16:], Decompose(u.Lo))
	return digits
}

// Truncate returns the low w.Digits() digits of u.
func (u Uint128) Truncate(w Width) []Nibble {
	all := u.Digits()
	return all[len(all)-w.Digits():]
}

// Big converts u to a big.Int.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return Format(u.Digits())
}

// ParseUint128 parses text in the given base. Base 0 infers it from a
// 0x, 0o or 0b prefix and otherwise reads decimal; underscores between
// digits are allowed in that case, as with Go literals.
func ParseUint128(text string, base int) (Uint128, error) {
	s := strings.TrimSpace(text)
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Uint128{}, errors.Newf(errors.ErrInvalidWord, "invalid word %q", text).
			WithDetail("word", text)
	}
	if b.Sign() < 0 {
		return Uint128{}, errors.Newf(errors.ErrInvalidWord, "word %q is negative", text).
			WithDetail("word", text)
	}
	if b.BitLen() > 128 {
		return Uint128{}, errors.Newf(errors.ErrWordOverflow, "word %q does not fit in 128 bits", text).
			WithDetail("word", text)
	}
	lo := new(big.Int).And(b, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(b, 64)
	return Uint128{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

// Compose is the inverse of decomposition: it folds up to 32 digits,
// most-significant first, back into a value.
func Compose(digits []Nibble) (Uint128, error) {
	if len(digits) > W128.Digits() {
		return Uint128{}, errors.Newf(errors.ErrWordOverflow, "%d digits do not fit in 128 bits", len(digits)).
			WithDetail("digits", len(digits))
	}
	var u Uint128
	for i, d := range digits {
		if !d.Valid() {
			return Uint128{}, errors.Newf(errors.ErrInvalidInput, "digit %d out of range: %d", i, d).
				WithDetail("position", i)
		}
		u = u.Shl(4).Or(Uint128{Lo: uint64(d)})
	}
	return u, nil
}
