package word

import (
	"testing"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("u8", func(t *testing.T) {
		w := New(uint8(0xAB))
		assert.Equal(t, uint8(0xAB), w.Value())
		assert.Equal(t, []nibble.Nibble{0xA, 0xB}, w.Digits())
		assert.Equal(t, nibble.W8, w.Width())
	})

	t.Run("u16", func(t *testing.T) {
		w := New(uint16(0xABCD))
		assert.Equal(t, uint16(0xABCD), w.Value())
		assert.Equal(t, []nibble.Nibble{0xA, 0xB, 0xC, 0xD}, w.Digits())
		assert.Equal(t, "0xABCD", w.String())
	})

	t.Run("u32", func(t *testing.T) {
		w := New(uint32(0x12345678))
		assert.Equal(t, []nibble.Nibble{1, 2, 3, 4, 5, 6, 7, 8}, w.Digits())
		assert.Equal(t, 8, w.DigitCount())
	})

	t.Run("u64", func(t *testing.T) {
		w := New(uint64(0x123456789ABCDEF0))
		assert.Equal(t,
			[]nibble.Nibble{1, 2, 3, 4, 5, 6, 7, 8, 9, 0xA, 0xB, 0xC, 0xD, 0xE, 0xF, 0},
			w.Digits())
	})

	t.Run("u128", func(t *testing.T) {
		w := New128(nibble.Max128)
		assert.Equal(t, nibble.Max128, w.Value())
		assert.Len(t, w.Digits(), 32)
		assert.Equal(t, nibble.W128, w.Width())
		assert.Equal(t, nibble.Nibble(0xF), w.Digit(31))
	})

	t.Run("value_is_usable_as_integer", func(t *testing.T) {
		w := New(uint16(0xABCD))
		assert.Equal(t, uint16(0xABCE), w.Value()+1)
	})
}

func TestDigitsAreImmutable(t *testing.T) {
	w := New(uint16(0xABCD))
	d := w.Digits()
	d[0] = 0
	assert.Equal(t, nibble.Nibble(0xA), w.Digit(0))
}

func TestWordMatch(t *testing.T) {
	ok, err := New(uint16(0xABCD)).Match("0xAXYD", match.Inclusive)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = New(uint16(0xABBD)).Match("0xAXXD", match.Exclusive)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = New(uint16(0xABBD)).MatchPattern(pattern.MustParse("0xAXYD", 4), match.Exclusive)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = New(uint16(0xABCD)).Match("0xAXYD", match.Single)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMultipleWildcardKeys))

	_, err = New(uint8(0xAB)).Match("0xAXYD", match.Inclusive)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLengthMismatch))

	b, ok, err := New(uint16(0x6A3F)).Bind("0x6XKK", match.Inclusive)
	require.NoError(t, err)
	require.False(t, ok)
	assert.Nil(t, b)

	b, ok, err = New(uint16(0x6A33)).Bind("0x6XKK", match.Inclusive)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "K=0x3 X=0xA", b.String())

	_, _, err = New(uint16(0x6A33)).Bind("0x6XK", match.Inclusive)
	assert.Error(t, err)
}

func TestWordMatchPrefixIsNotADigit(t *testing.T) {
	tests := []struct {
		name  string
		match func() (bool, error)
	}{
		{"two digits for a 16-bit word", func() (bool, error) {
			return New(uint16(0x05AB)).Match("0xAB", match.Inclusive)
		}},
		{"bare prefix for an 8-bit word", func() (bool, error) {
			return New(uint8(0x07)).Match("0x", match.Exclusive)
		}},
		{"two digits under single", func() (bool, error) {
			return New(uint16(0x1234)).Match("0x34", match.Single)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.match()
			require.Error(t, err)
			assert.False(t, ok)
			assert.True(t, errors.IsErrorCode(err, errors.ErrLengthMismatch), "got %v", err)
		})
	}
}
