package morsk

import (
	"strings"
	"text/template"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/output"
)

// heading renders a help section title for the command's output: upper
// case always, bold only when that output is a color terminal and
// --no-color was not given.
func heading(cmd *cobra.Command, title string) string {
	title = strings.ToUpper(title)
	if !helpStyled(cmd) {
		return title
	}
	return pterm.Bold.Sprint(title)
}

func helpStyled(cmd *cobra.Command) bool {
	if noColor, err := cmd.Root().PersistentFlags().GetBool("no-color"); err == nil && noColor {
		return false
	}
	return output.ColorEnabled("auto", cmd.OutOrStdout())
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{"heading": heading})
}
