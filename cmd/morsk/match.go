package morsk

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/match"
	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/output"
	"github.com/arthur-debert/morsk/pkg/word"
)

func newMatchCmd(a *app) *cobra.Command {
	var policyFlag, widthFlag string

	cmd := &cobra.Command{
		Use:     "match WORD PATTERN",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			wordText, patternText := args[0], args[1]

			policy := a.cfg.Match.Policy
			if policyFlag != "" {
				p, err := match.ParsePolicy(policyFlag)
				if err != nil {
					return err
				}
				policy = p
			}

			width := inferWidth(wordText, patternText, a.cfg.Match.Width)
			if widthFlag != "" {
				w, err := nibble.ParseWidth(widthFlag)
				if err != nil {
					return err
				}
				width = w
			}

			log.Debug().
				Str("word", wordText).
				Str("pattern", patternText).
				Str("width", width.String()).
				Str("policy", policy.String()).
				Msg("Matching")

			v, err := word.Parse(wordText, width)
			if err != nil {
				return err
			}
			m, err := match.Compile(patternText, width.Digits(), policy)
			if err != nil {
				return err
			}
			b, ok, err := m.Bind(v)
			if err != nil {
				return err
			}

			if err := a.renderer.Render(output.NewMatchView(v, m, b, ok)); err != nil {
				return err
			}
			if !ok {
				return ErrNoMatch
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&policyFlag, "policy", "p", "", MsgFlagPolicy)
	cmd.Flags().StringVarP(&widthFlag, "width", "w", "", MsgFlagWidth)
	_ = cmd.RegisterFlagCompletionFunc("policy", fixedCompletion("inclusive", "exclusive", "single"))
	_ = cmd.RegisterFlagCompletionFunc("width", fixedCompletion(widthNames()...))

	return cmd
}

func widthNames() []string {
	names := make([]string, len(nibble.Widths))
	for i, w := range nibble.Widths {
		names[i] = w.String()
	}
	return names
}
