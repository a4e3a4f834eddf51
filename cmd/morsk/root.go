// Package morsk holds the command tree of the morsk binary.
package morsk

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/internal/version"
	"github.com/arthur-debert/morsk/pkg/cobrax/topics"
	"github.com/arthur-debert/morsk/pkg/config"
	"github.com/arthur-debert/morsk/pkg/logging"
	"github.com/arthur-debert/morsk/pkg/output"
	"github.com/arthur-debert/morsk/pkg/paths"
	"github.com/arthur-debert/morsk/pkg/table"
)

//go:embed topics
var topicsFS embed.FS

// ErrNoMatch reports that a word matched nothing. It carries no message
// of its own: the result has already been printed.
var ErrNoMatch = stderrors.New("no match")

// Exit statuses
const (
	ExitOK      = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// app is the state shared by the commands of one invocation.
type app struct {
	verbosity  int
	configFile string
	format     string
	noColor    bool

	cfg      *config.Config
	renderer *output.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "morsk",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOptions(logging.Options{
				Verbosity: a.verbosity,
				Console:   cmd.ErrOrStderr(),
				NoColor:   a.noColor || !output.ColorEnabled("auto", cmd.ErrOrStderr()),
			})
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return stderrors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.format, "format", "", MsgFlagFormat)
	flags.BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)
	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletion(config.Formats...))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newMatchCmd(a))
	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newDigitsCmd(a))
	rootCmd.AddCommand(newTablesCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Topic-based help replaces cobra's help command
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd, a
}

// Run executes the command line in args and returns the exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, ErrNoMatch):
		return ExitNoMatch
	}

	if rerr := a.errorRenderer(stderr).RenderError(err); rerr != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitError
}

// load reads the configuration and builds the output renderer. Commands
// that do not need either skip it, so that a broken config file does not
// get in the way of help or completion.
func (a *app) load(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if a.format != "" {
		format, err := output.ParseFormat(a.format)
		if err != nil {
			return fmt.Errorf(MsgErrBadFormat, err)
		}
		overrides["output.format"] = format.String()
	}
	if a.noColor {
		overrides["output.color"] = "never"
	}

	cfg, err := config.Load(config.Options{File: a.configFile, Overrides: overrides})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return fmt.Errorf(MsgErrBadFormat, err)
	}
	out := cmd.OutOrStdout()
	a.renderer = output.NewRenderer(out, format, output.ColorEnabled(cfg.Output.Color, out))

	log.Debug().
		Str("source", cfg.Source).
		Str("format", format.String()).
		Msg("Configuration loaded")
	return nil
}

// errorRenderer renders errors to w in the configured format, falling back
// to text when the configuration never loaded.
func (a *app) errorRenderer(w io.Writer) *output.Renderer {
	format := output.FormatText
	color := "auto"
	if a.cfg != nil {
		if f, err := output.ParseFormat(a.cfg.Output.Format); err == nil {
			format = f
		}
		color = a.cfg.Output.Color
	}
	if a.noColor {
		color = "never"
	}
	return output.NewRenderer(w, format, output.ColorEnabled(color, w))
}

// registry searches the configured table directories, then the user
// tables directory, then the builtin tables.
func (a *app) registry() *table.Registry {
	dirs := make([]string, 0, len(a.cfg.Tables.Paths)+1)
	for _, dir := range a.cfg.Tables.Paths {
		dirs = append(dirs, paths.ExpandHome(dir))
	}
	dirs = append(dirs, paths.TablesDir())
	return table.NewRegistry(dirs...)
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
