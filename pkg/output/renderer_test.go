package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/table"
	"github.com/arthur-debert/morsk/pkg/word"
)

func matchView(t *testing.T, w uint16, text string, policy match.Policy) MatchView {
	t.Helper()
	m, err := match.Compile(text, 4, policy)
	require.NoError(t, err)
	v := word.New(w)
	b, ok, err := m.Bind(v)
	require.NoError(t, err)
	return NewMatchView(v, m, b, ok)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", FormatText, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
	assert.Equal(t, "unknown", Format(42).String())
}

func mustParse(t *testing.T, s string) Format {
	f, err := ParseFormat(s)
	require.NoError(t, err)
	return f
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ColorEnabled("always", &buf))
	assert.False(t, ColorEnabled("never", &buf))
	assert.False(t, ColorEnabled("auto", &buf), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled("auto", &buf))
}

func TestNewMatchView(t *testing.T) {
	v := matchView(t, 0x8124, "0x8XY4", match.Inclusive)
	assert.Equal(t, MatchView{
		Word:     "0x8124",
		Pattern:  "0x8XY4",
		Policy:   "inclusive",
		Matched:  true,
		Bindings: map[string]string{"X": "0x1", "Y": "0x2"},
	}, v)

	miss := matchView(t, 0x8125, "0x8XY4", match.Inclusive)
	assert.False(t, miss.Matched)
	assert.Nil(t, miss.Bindings)
}

func TestRenderMatchText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, false)

	require.NoError(t, r.Render(matchView(t, 0x8124, "0x8XY4", match.Inclusive)))
	assert.Equal(t, "0x8124 ~ 0x8XY4  (inclusive)\ntrue  X=0x1 Y=0x2\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(matchView(t, 0x8124, "0x8XX4", match.Inclusive)))
	assert.Equal(t, "0x8124 ~ 0x8XX4  (inclusive)\nfalse\n", buf.String())
}

func TestRenderStructured(t *testing.T) {
	view := matchView(t, 0x1234, "0x1NNN", match.Single)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatJSON, false).Render(view))
		var got MatchView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, view, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatYAML, false).Render(view))
		assert.Contains(t, buf.String(), "policy: single")
		assert.Contains(t, buf.String(), "0x234")
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatTOML, false).Render(view))
		var got map[string]interface{}
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, true, got["matched"])
		assert.Equal(t, map[string]interface{}{"N": "0x234"}, got["bindings"])
	})
}

func TestRenderDigits(t *testing.T) {
	view, err := NewDigitsView(word.New(uint16(0xABCD)))
	require.NoError(t, err)
	assert.Equal(t, DigitsView{
		Word:    "0xABCD",
		Width:   "u16",
		Decimal: "43981",
		Digits:  []string{"A", "B", "C", "D"},
	}, view)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText, false).Render(view))
	assert.Equal(t, "0xABCD u16 = 43981\nA B C D\n", buf.String())

	wide, err := NewDigitsView(word.New128(nibble.Max128))
	require.NoError(t, err)
	assert.Len(t, wide.Digits, 32)
	assert.Equal(t, "340282366920938463463374607431768211455", wide.Decimal)
}

func TestRenderDecode(t *testing.T) {
	chip8, err := table.Builtin("chip8")
	require.NoError(t, err)

	res, ok, err := chip8.Decode(word.New(uint16(0x8124)))
	require.NoError(t, err)
	require.True(t, ok)

	view := DecodeView{Table: "chip8", Results: []DecodeRow{
		NewDecodeRow("0x8124", res, true),
		NewDecodeRow("0xFFFF", table.Result{}, false),
	}}
	assert.Equal(t, map[string]string{"X": "0x1", "Y": "0x2"}, view.Results[0].Operands)
	assert.Empty(t, view.Results[1].Entry)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText, false).Render(view))
	out := buf.String()
	assert.Contains(t, out, res.Entry.Name)
	assert.Contains(t, out, "X=0x1 Y=0x2")
	assert.Contains(t, out, "(unknown)")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderTables(t *testing.T) {
	chip8, err := table.Builtin("chip8")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, false)
	require.NoError(t, r.Render(TableList{Tables: []TableSummary{NewTableSummary(chip8)}}))
	assert.Contains(t, buf.String(), "chip8")
	assert.Contains(t, buf.String(), "builtin:chip8")

	buf.Reset()
	view := NewTableView(chip8)
	assert.Equal(t, chip8.Len(), len(view.Rows))
	require.NoError(t, r.Render(view))
	assert.Contains(t, buf.String(), "0x8XY4")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatYAML, false).Render(view))
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "chip8", decoded["name"])
	assert.NotEmpty(t, decoded["rows"])
}

func TestRenderConfigText(t *testing.T) {
	settings := struct {
		Match struct {
			Width string `toml:"width"`
		} `toml:"match"`
	}{}
	settings.Match.Width = "u16"

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText, false).Render(ConfigView{Settings: settings}))
	assert.Contains(t, buf.String(), "# source: defaults")
	assert.Contains(t, buf.String(), "[match]")
	assert.Contains(t, buf.String(), "width = ")
	assert.Contains(t, buf.String(), "u16")
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrInvalidCharacter, "invalid character '!'").
		WithDetail("position", 2).
		WithDetail("character", "!")

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatText, false).RenderError(err))
		assert.Equal(t, "Error: "+err.Error()+"\ncharacter: !\nposition: 2\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatJSON, false).RenderError(err))
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "INVALID_CHARACTER", got["code"])
		assert.Equal(t, float64(2), got["details"].(map[string]interface{})["position"])
	})
}

func TestRenderStyled(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, true)
	require.NoError(t, r.Render(matchView(t, 0x8124, "0x8XY4", match.Inclusive)))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRenderUnknownView(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf, FormatText, false).Render(42)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
