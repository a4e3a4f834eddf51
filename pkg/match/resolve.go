// Package match decides whether a word's hex digits satisfy a pattern.
//
// Resolution runs in two stages. The literal stage walks the positions
// left to right and fails on the first literal digit that differs. The
// binding stage then checks the wildcard observations against the chosen
// Policy. Bindings never change once made, so no backtracking is needed
// and every call is linear in the digit count. Each call allocates its
// own binding maps; nothing is shared between calls.
package match

import (
	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
)

type observation struct {
	key   rune
	value nibble.Nibble
}

// Resolve reports whether digits match p under policy. A false result with
// a nil error is an ordinary non-match; errors are reserved for inputs
// that cannot be compared at all.
func Resolve(digits []nibble.Nibble, p pattern.Pattern, policy Policy) (bool, error) {
	if err := Validate(p, len(digits), policy); err != nil {
		return false, err
	}
	if err := checkDigits(digits); err != nil {
		return false, err
	}
	obs, ok := literalPass(digits, p)
	if !ok {
		return false, nil
	}
	return bindingPass(obs, policy), nil
}

// Bind is Resolve that also returns the wildcard values on a match.
func Bind(digits []nibble.Nibble, p pattern.Pattern, policy Policy) (Binding, bool, error) {
	ok, err := Resolve(digits, p, policy)
	if err != nil || !ok {
		return nil, false, err
	}
	b, err := collect(digits, p, policy)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Validate checks that p can be matched against words of digitCount
// digits under policy, without looking at any word.
func Validate(p pattern.Pattern, digitCount int, policy Policy) error {
	if !policy.Valid() {
		return errors.Newf(errors.ErrInvalidPolicy, "a match policy must be chosen (got %s)", policy).
			WithDetail("policy", int(policy))
	}
	if p.Len() != digitCount {
		return errors.Newf(errors.ErrLengthMismatch, "pattern %s has %d digits, word has %d", p, p.Len(), digitCount).
			WithDetail("pattern", p.String()).
			WithDetail("digits", p.Len()).
			WithDetail("expected", digitCount)
	}
	if policy == Single && p.KeyCount() > 1 {
		return errors.Newf(errors.ErrMultipleWildcardKeys, "pattern %s uses %d wildcard keys, single policy allows one", p, p.KeyCount()).
			WithDetail("pattern", p.String()).
			WithDetail("keys", string(p.Keys()))
	}
	return nil
}

func checkDigits(digits []nibble.Nibble) error {
	for i, d := range digits {
		if !d.Valid() {
			return errors.Newf(errors.ErrInvalidWord, "digit %d is %d, not a hex digit", i, d).
				WithDetail("position", i)
		}
	}
	return nil
}

// literalPass compares literal positions and records what each wildcard
// position saw.
func literalPass(digits []nibble.Nibble, p pattern.Pattern) ([]observation, bool) {
	obs := make([]observation, 0, p.Len())
	for i, d := range digits {
		s := p.At(i)
		if !s.IsWildcard() {
			if d != s.Value {
				return nil, false
			}
			continue
		}
		obs = append(obs, observation{key: s.Key, value: d})
	}
	return obs, true
}

func bindingPass(obs []observation, policy Policy) bool {
	switch policy {
	case Inclusive:
		return bindConsistent(obs, false)
	case Exclusive:
		return bindConsistent(obs, true)
	default:
		// Single: the one key is a free mask.
		return true
	}
}

// bindConsistent binds each key to the first value it sees and requires
// later occurrences to agree. With exclusive set, a value owned by one
// key cannot be taken by another.
func bindConsistent(obs []observation, exclusive bool) bool {
	bound := make(map[rune]nibble.Nibble, len(obs))
	var owner map[nibble.Nibble]rune
	if exclusive {
		owner = make(map[nibble.Nibble]rune, len(obs))
	}

	for _, o := range obs {
		if v, ok := bound[o.key]; ok {
			if v != o.value {
				return false
			}
			continue
		}
		if exclusive {
			if k, taken := owner[o.value]; taken && k != o.key {
				return false
			}
			owner[o.value] = o.key
		}
		bound[o.key] = o.value
	}
	return true
}

// collect gathers the digits under each key. Consistent policies keep
// the single digit a key is bound to; under Single every occurrence
// contributes a digit.
func collect(digits []nibble.Nibble, p pattern.Pattern, policy Policy) (Binding, error) {
	seen := make(map[rune][]nibble.Nibble, p.KeyCount())
	for i, d := range digits {
		s := p.At(i)
		if !s.IsWildcard() {
			continue
		}
		if policy != Single && len(seen[s.Key]) > 0 {
			continue
		}
		seen[s.Key] = append(seen[s.Key], d)
	}

	b := make(Binding, len(seen))
	for key, ds := range seen {
		value, err := nibble.Compose(ds)
		if err != nil {
			return nil, err
		}
		b[key] = Capture{Value: value, Digits: ds}
	}
	return b, nil
}
