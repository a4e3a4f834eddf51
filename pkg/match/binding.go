package match

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Binding maps each wildcard key to the value it captured in one match.
//
// Under Inclusive and Exclusive every key holds a single digit. Under
// Single the one key may span several positions; its value is the digits
// it covered read most-significant first, so 0x1NNN against 0x1234
// captures N=0x234.
type Binding map[rune]Capture

// Capture is the value seen by one wildcard key.
type Capture struct {
	Value  nibble.Uint128
	Digits []nibble.Nibble
}

// Get returns the captured value for key as a uint64. Captures wider than
// 64 bits are truncated; use the Capture directly for those.
func (b Binding) Get(key rune) (uint64, bool) {
	c, ok := b[key]
	if !ok {
		return 0, false
	}
	return c.Value.Lo, true
}

// As returns the value captured by key as T, failing with WORD_OVERFLOW
// when the capture covers more digits than T holds. A register index
// bound by 0x8XY4 reads as As[uint8](b, 'X').
func As[T constraints.Unsigned](b Binding, key rune) (T, bool, error) {
	c, ok := b[key]
	if !ok {
		return 0, false, nil
	}
	v, err := nibble.ComposeAs[T](c.Digits)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

// Keys returns the bound keys in ascending order.
func (b Binding) Keys() []rune {
	keys := make([]rune, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Map returns the binding as key name to hex text, for rendering.
func (b Binding) Map() map[string]string {
	out := make(map[string]string, len(b))
	for k, c := range b {
		out[string(k)] = c.Hex()
	}
	return out
}

func (b Binding) String() string {
	parts := make([]string, 0, len(b))
	for _, k := range b.Keys() {
		parts = append(parts, fmt.Sprintf("%c=%s", k, b[k].Hex()))
	}
	return strings.Join(parts, " ")
}

// Hex renders the capture with one hex digit per position it covered.
func (c Capture) Hex() string {
	return nibble.Format(c.Digits)
}
