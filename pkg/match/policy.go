package match

import (
	"strings"

	"github.com/arthur-debert/morsk/pkg/errors"
)

// Policy selects how wildcard bindings must agree.
type Policy int

const (
	// PolicyUnset is the zero value. It is never accepted by Resolve: callers
	// must choose a policy explicitly.
	PolicyUnset Policy = iota

	// Inclusive requires every occurrence of a key to see the same digit.
	// Distinct keys may see the same digit.
	Inclusive

	// Exclusive is Inclusive plus: distinct keys must see distinct digits.
	Exclusive

	// Single allows exactly one wildcard key, whose occurrences match any
	// digit independently.
	Single
)

// Policies lists the selectable policies.
var Policies = []Policy{Inclusive, Exclusive, Single}

func (p Policy) String() string {
	switch p {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	case Single:
		return "single"
	default:
		return "unset"
	}
}

// Operator returns the infix operator the policy is written with in
// pattern expressions: | for inclusive, ^ for exclusive and & for single.
func (p Policy) Operator() string {
	switch p {
	case Inclusive:
		return "|"
	case Exclusive:
		return "^"
	case Single:
		return "&"
	default:
		return "?"
	}
}

// Valid reports whether p is one of the three policies.
func (p Policy) Valid() bool {
	return p == Inclusive || p == Exclusive || p == Single
}

// ParsePolicy accepts a policy name ("inclusive"), its short logical
// name ("or", "xor", "and") or its operator ("|", "^", "&").
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inclusive", "incl", "or", "|":
		return Inclusive, nil
	case "exclusive", "excl", "xor", "^":
		return Exclusive, nil
	case "single", "and", "&":
		return Single, nil
	default:
		return PolicyUnset, errors.Newf(errors.ErrInvalidPolicy, "unknown policy %q (want inclusive, exclusive or single)", s).
			WithDetail("policy", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Newf(errors.ErrInvalidPolicy, "cannot marshal policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
