package pattern

import (
	"github.com/arthur-debert/morsk/pkg/nibble"
)

// Kind tells literal and wildcard symbols apart.
type Kind uint8

const (
	KindLiteral Kind = iota + 1
	KindWildcard
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Symbol is one digit position of a pattern: either an exact nibble or a
// wildcard identified by its key.
type Symbol struct {
	Kind  Kind
	Value nibble.Nibble
	Key   rune
}

// Literal returns a symbol requiring exactly n.
func Literal(n nibble.Nibble) Symbol {
	return Symbol{Kind: KindLiteral, Value: n & 0xF}
}

// Wildcard returns a wildcard symbol for key r. The key is normalized so
// that 'x' and 'X' name the same wildcard.
func Wildcard(r rune) Symbol {
	return Symbol{Kind: KindWildcard, Key: NormalizeKey(r)}
}

// IsWildcard reports whether s binds a value instead of requiring one.
func (s Symbol) IsWildcard() bool {
	return s.Kind == KindWildcard
}

func (s Symbol) String() string {
	if s.IsWildcard() {
		return string(s.Key)
	}
	return s.Value.String()
}
