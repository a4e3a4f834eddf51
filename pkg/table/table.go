// Package table decodes words against ordered tables of named patterns.
//
// A table is the typical consumer of the matching engine: an instruction
// set where each opcode is written as a pattern such as 0x8XY4 and the
// wildcard values become the instruction's operands. Entries are tried in
// declaration order and the first match wins, so specific patterns must
// be listed before the general ones they overlap with.
package table

import (
	"fmt"
	"time"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/logging"
	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/pattern"
	"github.com/arthur-debert/morsk/pkg/word"
)

// Definition is a table as written in a TOML or YAML file.
type Definition struct {
	Name        string            `toml:"name" yaml:"name" json:"name"`
	Description string            `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Width       nibble.Width      `toml:"width" yaml:"width" json:"width"`
	Policy      match.Policy      `toml:"policy,omitempty" yaml:"policy,omitempty" json:"policy,omitempty"`
	Entries     []EntryDefinition `toml:"entries" yaml:"entries" json:"entries"`
}

// EntryDefinition is one named pattern. An unset policy inherits the
// table's.
type EntryDefinition struct {
	Name        string       `toml:"name" yaml:"name" json:"name"`
	Pattern     string       `toml:"pattern" yaml:"pattern" json:"pattern"`
	Policy      match.Policy `toml:"policy,omitempty" yaml:"policy,omitempty" json:"policy,omitempty"`
	Description string       `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
}

// Entry is a compiled table entry.
type Entry struct {
	Index       int
	Name        string
	Description string
	Matcher     *match.Matcher
}

// Pattern returns the entry's parsed pattern.
func (e Entry) Pattern() pattern.Pattern { return e.Matcher.Pattern() }

// Policy returns the entry's resolved policy.
func (e Entry) Policy() match.Policy { return e.Matcher.Policy() }

// Table is a compiled, immutable decoding table.
type Table struct {
	Name        string
	Description string
	Width       nibble.Width
	Source      string
	entries     []Entry
	byName      map[string]int
}

// Result is one entry matched by a word.
type Result struct {
	Word    string
	Entry   Entry
	Binding match.Binding
}

// Compile parses every pattern of def once against the table width.
func Compile(def Definition) (*Table, error) {
	log := logging.GetLogger("table.Compile")
	defer logging.LogDuration(time.Now(), "compile table")

	if def.Name == "" {
		return nil, errors.New(errors.ErrTableInvalid, "table has no name")
	}
	if !def.Width.Valid() {
		return nil, errors.Newf(errors.ErrTableInvalid, "table %s: unsupported width %d", def.Name, int(def.Width)).
			WithDetail("table", def.Name)
	}
	if len(def.Entries) == 0 {
		return nil, errors.Newf(errors.ErrTableInvalid, "table %s has no entries", def.Name).
			WithDetail("table", def.Name)
	}

	t := &Table{
		Name:        def.Name,
		Description: def.Description,
		Width:       def.Width,
		entries:     make([]Entry, 0, len(def.Entries)),
		byName:      make(map[string]int, len(def.Entries)),
	}

	for i, ed := range def.Entries {
		name := ed.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if _, dup := t.byName[name]; dup {
			return nil, errors.Newf(errors.ErrTableInvalid, "table %s: duplicate entry %s", def.Name, name).
				WithDetail("table", def.Name).
				WithDetail("entry", name)
		}

		policy := ed.Policy
		if policy == match.PolicyUnset {
			policy = def.Policy
		}
		m, err := match.Compile(ed.Pattern, def.Width.Digits(), policy)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTableInvalid, "table %s: entry %s", def.Name, name).
				WithDetails(map[string]interface{}{
					"table": def.Name,
					"entry": name,
					"index": i,
				})
		}

		t.byName[name] = len(t.entries)
		t.entries = append(t.entries, Entry{
			Index:       i,
			Name:        name,
			Description: ed.Description,
			Matcher:     m,
		})
	}

	log.Debug().
		Str("table", t.Name).
		Str("width", t.Width.String()).
		Int("entries", len(t.entries)).
		Msg("Table compiled")

	return t, nil
}

// Entries returns the compiled entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup finds an entry by name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Decode returns the first entry matching v.
func (t *Table) Decode(v word.Value) (Result, bool, error) {
	if err := t.checkWidth(v); err != nil {
		return Result{}, false, err
	}
	for _, e := range t.entries {
		b, ok, err := e.Matcher.Bind(v)
		if err != nil {
			return Result{}, false, err
		}
		if ok {
			return Result{Word: v.String(), Entry: e, Binding: b}, true, nil
		}
	}
	return Result{}, false, nil
}

// DecodeAll returns every entry matching v, in declaration order. It is
// mostly useful to find overlapping patterns.
func (t *Table) DecodeAll(v word.Value) ([]Result, error) {
	if err := t.checkWidth(v); err != nil {
		return nil, err
	}
	var results []Result
	for _, e := range t.entries {
		b, ok, err := e.Matcher.Bind(v)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, Result{Word: v.String(), Entry: e, Binding: b})
		}
	}
	return results, nil
}

// Overlaps reports pairs of entries where a later entry can never be
// reached for some word because an earlier one matches first. Only exact
// shadowing is reported: the earlier pattern must accept every word the
// later one accepts.
func (t *Table) Overlaps() [][2]string {
	var out [][2]string
	for j, later := range t.entries {
		for _, earlier := range t.entries[:j] {
			if shadows(earlier, later) {
				out = append(out, [2]string{earlier.Name, later.Name})
				break
			}
		}
	}
	return out
}

// shadows reports whether every word accepted by b is accepted by a. Only
// the simple case is decided: a has no repeated keys and no exclusive
// constraint, and each of a's literals is a literal of b with the same value.
func shadows(a, b Entry) bool {
	pa, pb := a.Pattern(), b.Pattern()
	if a.Policy() == match.Exclusive && pa.KeyCount() > 1 {
		return false
	}
	for _, k := range pa.Keys() {
		if len(pa.Positions(k)) > 1 && a.Policy() != match.Single {
			return false
		}
	}
	for i := 0; i < pa.Len(); i++ {
		sa, sb := pa.At(i), pb.At(i)
		if sa.IsWildcard() {
			continue
		}
		if sb.IsWildcard() || sb.Value != sa.Value {
			return false
		}
	}
	return true
}

func (t *Table) checkWidth(v word.Value) error {
	if v.Width() != t.Width {
		return errors.Newf(errors.ErrLengthMismatch, "table %s decodes %s words, got %s (%s)", t.Name, t.Width, v, v.Width()).
			WithDetail("table", t.Name).
			WithDetail("expected", t.Width.Digits()).
			WithDetail("digits", v.DigitCount())
	}
	return nil
}
