// Package output renders command results.
//
// Every result is a plain view struct (MatchView, DecodeView, ...). The
// structured formats encode the view as is; the text format draws it with
// the lipgloss styles of the styles package, and lists are laid out as
// pterm tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/logging"
	"github.com/arthur-debert/morsk/pkg/output/styles"
)

// Renderer writes views to an io.Writer in one format.
type Renderer struct {
	writer io.Writer
	format Format
	color  bool
	lg     *lipgloss.Renderer
}

// NewRenderer creates a renderer. color only affects FormatText.
func NewRenderer(w io.Writer, format Format, color bool) *Renderer {
	log := logging.GetLogger("output.Renderer")

	lg := lipgloss.NewRenderer(w)
	if color {
		if lg.ColorProfile() == termenv.Ascii {
			lg.SetColorProfile(termenv.ANSI256)
		}
		pterm.EnableColor()
	} else {
		lg.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
	}

	log.Debug().
		Str("format", format.String()).
		Bool("color", color).
		Msg("Renderer created")

	return &Renderer{writer: w, format: format, color: color, lg: lg}
}

// Format returns the renderer's format.
func (r *Renderer) Format() Format { return r.format }

// Render writes one view.
func (r *Renderer) Render(view interface{}) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(r.writer)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(r.writer).Encode(view)
	}

	text, err := r.text(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, text)
	return err
}

// RenderError writes err, with the details of a coded error, in the
// renderer's format.
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	details := errors.GetErrorDetails(err)

	if r.format != FormatText {
		obj := map[string]interface{}{
			"error": err.Error(),
			"code":  string(code),
		}
		if len(details) > 0 {
			obj["details"] = details
		}
		return r.Render(obj)
	}

	var b strings.Builder
	b.WriteString(r.style("Error", "Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(r.style("Detail", fmt.Sprintf("%s: %v", k, details[k])))
	}
	_, werr := fmt.Fprintln(r.writer, b.String())
	return werr
}

func (r *Renderer) text(view interface{}) (string, error) {
	switch v := view.(type) {
	case MatchView:
		return r.matchText(v), nil
	case DigitsView:
		return r.digitsText(v), nil
	case DecodeView:
		return r.decodeText(v)
	case TableList:
		return r.tableListText(v)
	case TableView:
		return r.tableText(v)
	case ConfigView:
		return r.configText(v)
	case string:
		return v, nil
	default:
		return "", errors.Newf(errors.ErrInternal, "no text rendering for %T", view)
	}
}

func (r *Renderer) matchText(v MatchView) string {
	verdict := r.style("NoMatch", "false")
	if v.Matched {
		verdict = r.style("Match", "true")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s  %s", r.style("Word", v.Word), r.style("Muted", "~"), r.pattern(v.Pattern), r.style("Muted", "("+v.Policy+")"))
	fmt.Fprintf(&b, "\n%s", verdict)
	if bindings := r.bindings(v.Bindings); bindings != "" {
		b.WriteString("  ")
		b.WriteString(bindings)
	}
	return b.String()
}

func (r *Renderer) digitsText(v DigitsView) string {
	cells := make([]string, len(v.Digits))
	for i, d := range v.Digits {
		cells[i] = r.style("Literal", d)
	}
	return fmt.Sprintf("%s %s %s\n%s",
		r.style("Word", v.Word),
		r.style("Muted", v.Width),
		r.style("Muted", "= "+v.Decimal),
		strings.Join(cells, " "))
}

func (r *Renderer) decodeText(v DecodeView) (string, error) {
	data := pterm.TableData{{"Word", "Entry", "Pattern", "Operands", "Description"}}
	for _, row := range v.Results {
		if !row.Matched {
			data = append(data, []string{r.style("Word", row.Word), r.style("NoMatch", "(unknown)"), "", "", ""})
			continue
		}
		data = append(data, []string{
			r.style("Word", row.Word),
			r.style("Entry", row.Entry),
			r.pattern(row.Pattern),
			r.bindings(row.Operands),
			row.Description,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func (r *Renderer) tableListText(v TableList) (string, error) {
	data := pterm.TableData{{"Name", "Width", "Entries", "Source", "Description"}}
	for _, t := range v.Tables {
		data = append(data, []string{
			r.style("Entry", t.Name),
			t.Width,
			fmt.Sprint(t.Entries),
			r.style("Muted", t.Source),
			t.Description,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func (r *Renderer) tableText(v TableView) (string, error) {
	data := pterm.TableData{{"Name", "Pattern", "Policy", "Description"}}
	for _, e := range v.Rows {
		data = append(data, []string{r.style("Entry", e.Name), r.pattern(e.Pattern), e.Policy, e.Description})
	}
	body, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", r.style("Title", v.Name), r.style("Muted", v.Width), r.style("Muted", v.Source))
	if v.Description != "" {
		b.WriteString(v.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(body)
	for _, s := range v.Shadowed {
		b.WriteString("\n")
		b.WriteString(r.style("Error", "warning: ") + s)
	}
	return b.String(), nil
}

func (r *Renderer) configText(v ConfigView) (string, error) {
	data, err := toml.Marshal(v.Settings)
	if err != nil {
		return "", err
	}
	source := v.Source
	if source == "" {
		source = "defaults"
	}
	return r.style("Muted", "# source: "+source) + "\n" + strings.TrimRight(string(data), "\n"), nil
}

// pattern styles the digits of canonical pattern text: literals and
// wildcard keys get different styles.
func (r *Renderer) pattern(text string) string {
	if !r.color {
		return text
	}
	body := strings.TrimPrefix(text, "0x")
	var b strings.Builder
	if len(body) != len(text) {
		b.WriteString(r.style("Muted", "0x"))
	}
	for _, c := range body {
		if strings.ContainsRune("0123456789ABCDEFabcdef", c) {
			b.WriteString(r.style("Literal", string(c)))
		} else {
			b.WriteString(r.style("Wildcard", string(c)))
		}
	}
	return b.String()
}

func (r *Renderer) bindings(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, r.style("Key", k)+"="+r.style("Value", m[k]))
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) style(name, text string) string {
	if !r.color {
		return text
	}
	return styles.GetStyle(name).Renderer(r.lg).Render(text)
}
