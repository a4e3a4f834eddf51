package output

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/table"
	"github.com/arthur-debert/morsk/pkg/word"
)

// MatchView is the result of matching one word against one pattern.
type MatchView struct {
	Word     string            `json:"word" yaml:"word" toml:"word"`
	Pattern  string            `json:"pattern" yaml:"pattern" toml:"pattern"`
	Policy   string            `json:"policy" yaml:"policy" toml:"policy"`
	Matched  bool              `json:"matched" yaml:"matched" toml:"matched"`
	Bindings map[string]string `json:"bindings,omitempty" yaml:"bindings,omitempty" toml:"bindings,omitempty"`
}

// NewMatchView builds a MatchView. b may be nil when the word did not match.
func NewMatchView(v word.Value, m *match.Matcher, b match.Binding, matched bool) MatchView {
	view := MatchView{
		Word:    v.String(),
		Pattern: m.Pattern().String(),
		Policy:  m.Policy().String(),
		Matched: matched,
	}
	if matched && len(b) > 0 {
		view.Bindings = b.Map()
	}
	return view
}

// DigitsView shows the nibble decomposition of a word.
type DigitsView struct {
	Word    string   `json:"word" yaml:"word" toml:"word"`
	Width   string   `json:"width" yaml:"width" toml:"width"`
	Decimal string   `json:"decimal" yaml:"decimal" toml:"decimal"`
	Digits  []string `json:"digits" yaml:"digits" toml:"digits"`
}

// NewDigitsView builds a DigitsView.
func NewDigitsView(v word.Value) (DigitsView, error) {
	digits := v.Digits()
	value, err := nibble.Compose(digits)
	if err != nil {
		return DigitsView{}, err
	}
	view := DigitsView{
		Word:    v.String(),
		Width:   v.Width().String(),
		Decimal: value.Big().String(),
		Digits:  make([]string, len(digits)),
	}
	for i, d := range digits {
		view.Digits[i] = d.String()
	}
	return view, nil
}

// DecodeRow is one decoded word.
type DecodeRow struct {
	Word        string            `json:"word" yaml:"word" toml:"word"`
	Matched     bool              `json:"matched" yaml:"matched" toml:"matched"`
	Entry       string            `json:"entry,omitempty" yaml:"entry,omitempty" toml:"entry,omitempty"`
	Pattern     string            `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Policy      string            `json:"policy,omitempty" yaml:"policy,omitempty" toml:"policy,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Operands    map[string]string `json:"operands,omitempty" yaml:"operands,omitempty" toml:"operands,omitempty"`
}

// DecodeView is the result of decoding words against a table.
type DecodeView struct {
	Table   string      `json:"table" yaml:"table" toml:"table"`
	Results []DecodeRow `json:"results" yaml:"results" toml:"results"`
}

// NewDecodeRow builds a row from a table result.
func NewDecodeRow(wordText string, res table.Result, matched bool) DecodeRow {
	row := DecodeRow{Word: wordText, Matched: matched}
	if !matched {
		return row
	}
	row.Entry = res.Entry.Name
	row.Pattern = res.Entry.Pattern().String()
	row.Policy = res.Entry.Policy().String()
	row.Description = res.Entry.Description
	if len(res.Binding) > 0 {
		row.Operands = res.Binding.Map()
	}
	return row
}

// NewDecodeView builds a view from a batch decode.
func NewDecodeView(t *table.Table, decoded []table.Decoded) DecodeView {
	view := DecodeView{Table: t.Name, Results: make([]DecodeRow, 0, len(decoded))}
	for _, d := range decoded {
		view.Results = append(view.Results, NewDecodeRow(d.Word, d.Result, d.Matched))
	}
	return view
}

// TableSummary describes one available table.
type TableSummary struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Width       string `json:"width" yaml:"width" toml:"width"`
	Entries     int    `json:"entries" yaml:"entries" toml:"entries"`
	Source      string `json:"source" yaml:"source" toml:"source"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// TableList lists the available tables.
type TableList struct {
	Tables []TableSummary `json:"tables" yaml:"tables" toml:"tables"`
}

// NewTableSummary summarizes a table.
func NewTableSummary(t *table.Table) TableSummary {
	return TableSummary{
		Name:        t.Name,
		Width:       t.Width.String(),
		Entries:     t.Len(),
		Source:      t.Source,
		Description: t.Description,
	}
}

// EntryRow is one entry of a table.
type EntryRow struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Pattern     string `json:"pattern" yaml:"pattern" toml:"pattern"`
	Policy      string `json:"policy" yaml:"policy" toml:"policy"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// TableView shows the entries of one table.
type TableView struct {
	TableSummary `yaml:",inline"`
	Rows         []EntryRow `json:"rows" yaml:"rows" toml:"rows"`
	Shadowed     []string   `json:"shadowed,omitempty" yaml:"shadowed,omitempty" toml:"shadowed,omitempty"`
}

// NewTableView builds a TableView.
func NewTableView(t *table.Table) TableView {
	view := TableView{TableSummary: NewTableSummary(t)}
	for _, e := range t.Entries() {
		view.Rows = append(view.Rows, EntryRow{
			Name:        e.Name,
			Pattern:     e.Pattern().String(),
			Policy:      e.Policy().String(),
			Description: e.Description,
		})
	}
	for _, pair := range t.Overlaps() {
		view.Shadowed = append(view.Shadowed, fmt.Sprintf("%s shadows %s", pair[0], pair[1]))
	}
	return view
}

// ConfigView shows the effective configuration.
type ConfigView struct {
	Source   string      `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Settings interface{} `json:"settings" yaml:"settings" toml:"settings"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
