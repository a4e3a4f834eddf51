package table

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/word"
)

func TestDecodeMany(t *testing.T) {
	tbl := chip8(t)
	words := []uint16{0x00E0, 0x8124, 0xFFFF, 0x1234, 0xD125}
	values := make([]word.Value, len(words))
	for i, w := range words {
		values[i] = word.New(w)
	}

	for _, workers := range []int{0, 1, 3, 16} {
		out, err := tbl.DecodeMany(context.Background(), values, workers)
		require.NoError(t, err)
		require.Len(t, out, len(words))

		assert.Equal(t, "0x00E0", out[0].Word)
		assert.Equal(t, "CLS", out[0].Result.Entry.Name)
		assert.Equal(t, "ADD_VX_VY", out[1].Result.Entry.Name)
		assert.False(t, out[2].Matched)
		assert.Equal(t, "0xFFFF", out[2].Word)
		assert.Equal(t, "N=0x234", out[3].Result.Binding.String())
		assert.Equal(t, "DRW", out[4].Result.Entry.Name)
	}
}

func TestDecodeManyEmpty(t *testing.T) {
	out, err := chip8(t).DecodeMany(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeManyStopsOnError(t *testing.T) {
	values := []word.Value{word.New(uint16(0x00E0)), word.New(uint8(0x12))}
	_, err := chip8(t).DecodeMany(context.Background(), values, 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLengthMismatch))
}

func TestDecodeManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chip8(t).DecodeMany(ctx, []word.Value{word.New(uint16(0x00E0))}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestDecodeManyLogsBatchFields(t *testing.T) {
	tbl := chip8(t)
	buf := captureLog(t)

	_, err := tbl.DecodeMany(context.Background(), []word.Value{word.New(uint16(0x00E0))}, 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"table.DecodeMany"`)
	assert.Contains(t, out, `"table":"chip8"`)
	assert.Contains(t, out, `"words":1`)
	assert.Contains(t, out, `"workers":2`)
	assert.Contains(t, out, "Batch decoded")
}
