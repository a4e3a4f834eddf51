package match_test

import (
	"testing"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digits []nibble.Nibble

func (d digits) Digits() []nibble.Nibble { return d }

func TestCompile(t *testing.T) {
	m, err := match.Compile("0x8XY4", 4, match.Inclusive)
	require.NoError(t, err)
	assert.Equal(t, 4, m.DigitCount())
	assert.Equal(t, match.Inclusive, m.Policy())
	assert.Equal(t, "| 0x8XY4", m.String())

	ok, err := m.Match(digits(nibble.Decompose(uint16(0x8AB4))))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.MatchDigits(nibble.Decompose(uint16(0x8AB5)))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.Match(digits(nibble.Decompose(uint8(0x84))))
	assert.True(t, errors.IsErrorCode(err, errors.ErrLengthMismatch))
}

func TestCompileErrors(t *testing.T) {
	_, err := match.Compile("0x8XY", 4, match.Inclusive)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLengthMismatch))

	_, err = match.Compile("0x8XY0", 4, match.Single)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMultipleWildcardKeys))

	_, err = match.NewMatcher(pattern.MustParse("0x8XY0", 4), match.PolicyUnset)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPolicy))
}

func TestBind(t *testing.T) {
	t.Run("inclusive_values", func(t *testing.T) {
		b, ok, err := match.Bind(nibble.Decompose(uint16(0x8AB4)), pattern.MustParse("0x8XY4", 4), match.Inclusive)
		require.NoError(t, err)
		require.True(t, ok)

		x, found := b.Get('X')
		assert.True(t, found)
		assert.Equal(t, uint64(0xA), x)
		y, _ := b.Get('Y')
		assert.Equal(t, uint64(0xB), y)
		assert.Equal(t, []rune{'X', 'Y'}, b.Keys())
		assert.Equal(t, "X=0xA Y=0xB", b.String())
	})

	t.Run("repeated_key_binds_one_digit", func(t *testing.T) {
		b, ok, err := match.Bind(nibble.Decompose(uint16(0xABBD)), pattern.MustParse("0xAXXD", 4), match.Exclusive)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []nibble.Nibble{0xB}, b['X'].Digits)
	})

	t.Run("single_concatenates", func(t *testing.T) {
		b, ok, err := match.Bind(nibble.Decompose(uint16(0x1234)), pattern.MustParse("0x1NNN", 4), match.Single)
		require.NoError(t, err)
		require.True(t, ok)
		n, _ := b.Get('N')
		assert.Equal(t, uint64(0x234), n)
		assert.Equal(t, map[string]string{"N": "0x234"}, b.Map())
	})

	t.Run("no_match_has_no_binding", func(t *testing.T) {
		b, ok, err := match.Bind(nibble.Decompose(uint16(0xABCD)), pattern.MustParse("0xAXXD", 4), match.Inclusive)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, b)
	})

	t.Run("missing_key", func(t *testing.T) {
		b, _, err := match.Bind(nibble.Decompose(uint8(0x12)), pattern.MustParse("0x1Z", 2), match.Inclusive)
		require.NoError(t, err)
		_, found := b.Get('Q')
		assert.False(t, found)
	})
}

func TestBindingAs(t *testing.T) {
	b, ok, err := match.Bind(nibble.Decompose(uint16(0x1234)), pattern.MustParse("0x1NNN", 4), match.Single)
	require.NoError(t, err)
	require.True(t, ok)

	n, found, err := match.As[uint16](b, 'N')
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint16(0x234), n)

	_, found, err = match.As[uint8](b, 'N')
	assert.True(t, found)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWordOverflow), "got %v", err)

	_, found, err = match.As[uint8](b, 'Q')
	require.NoError(t, err)
	assert.False(t, found)

	regs, _, err := match.Bind(nibble.Decompose(uint16(0x8AB4)), pattern.MustParse("0x8XY4", 4), match.Inclusive)
	require.NoError(t, err)
	x, _, err := match.As[uint8](regs, 'X')
	require.NoError(t, err)
	assert.Equal(t, uint8(0xA), x)
}

func TestMatchText(t *testing.T) {
	ok, err := match.Match(digits(nibble.Decompose(uint16(0xABCD))), "0xAXYD", match.Inclusive)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = match.Match(digits(nibble.Decompose(uint16(0xABCD))), "0xA?YD", match.Inclusive)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidCharacter))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want match.Policy
	}{
		{"inclusive", match.Inclusive},
		{"OR", match.Inclusive},
		{"|", match.Inclusive},
		{"exclusive", match.Exclusive},
		{"xor", match.Exclusive},
		{"^", match.Exclusive},
		{"single", match.Single},
		{"and", match.Single},
		{" & ", match.Single},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := match.ParsePolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := match.ParsePolicy("maybe")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPolicy))
	_, err = match.ParsePolicy("")
	assert.Error(t, err)
}

func TestPolicyText(t *testing.T) {
	for _, p := range match.Policies {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var back match.Policy
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}

	_, err := match.PolicyUnset.MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unset", match.PolicyUnset.String())
	assert.Equal(t, "^", match.Exclusive.Operator())
}
