package match

import (
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
)

// Digitized is anything exposing big-endian hex digits, such as a
// word.Word.
type Digitized interface {
	Digits() []nibble.Nibble
}

// Matcher is a pattern parsed and validated once for a fixed digit count
// and policy. It is immutable and safe for concurrent use.
type Matcher struct {
	pattern pattern.Pattern
	policy  Policy
	digits  int
}

// Compile parses text for words of digitCount digits and checks it is
// usable under policy.
func Compile(text string, digitCount int, policy Policy) (*Matcher, error) {
	p, err := pattern.Parse(text, digitCount)
	if err != nil {
		return nil, err
	}
	return NewMatcher(p, policy)
}

// NewMatcher wraps an already parsed pattern.
func NewMatcher(p pattern.Pattern, policy Policy) (*Matcher, error) {
	if err := Validate(p, p.Len(), policy); err != nil {
		return nil, err
	}
	return &Matcher{pattern: p, policy: policy, digits: p.Len()}, nil
}

// Pattern returns the compiled pattern.
func (m *Matcher) Pattern() pattern.Pattern { return m.pattern }

// Policy returns the policy the matcher applies.
func (m *Matcher) Policy() Policy { return m.policy }

// DigitCount returns the word size the matcher accepts, in digits.
func (m *Matcher) DigitCount() int { return m.digits }

// Match reports whether v matches. Errors are a word of the wrong width
// or raw digits above 0xF.
func (m *Matcher) Match(v Digitized) (bool, error) {
	return m.MatchDigits(v.Digits())
}

// MatchDigits is Match on raw digits.
func (m *Matcher) MatchDigits(digits []nibble.Nibble) (bool, error) {
	return Resolve(digits, m.pattern, m.policy)
}

// Bind is Match returning the wildcard values.
func (m *Matcher) Bind(v Digitized) (Binding, bool, error) {
	return Bind(v.Digits(), m.pattern, m.policy)
}

func (m *Matcher) String() string {
	return m.policy.Operator() + " " + m.pattern.String()
}

// Match parses text for the width of v and resolves it under policy.
func Match(v Digitized, text string, policy Policy) (bool, error) {
	digits := v.Digits()
	p, err := pattern.Parse(text, len(digits))
	if err != nil {
		return false, err
	}
	return Resolve(digits, p, policy)
}
