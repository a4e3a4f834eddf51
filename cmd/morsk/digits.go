package morsk

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/nibble"
	"github.com/arthur-debert/morsk/pkg/output"
	"github.com/arthur-debert/morsk/pkg/word"
)

func newDigitsCmd(a *app) *cobra.Command {
	var widthFlag string

	cmd := &cobra.Command{
		Use:     "digits WORD",
		Short:   MsgDigitsShort,
		Long:    MsgDigitsLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			var (
				v   word.Value
				err error
			)
			if widthFlag == "" {
				v, err = word.ParseAuto(args[0])
			} else {
				var w nibble.Width
				if w, err = nibble.ParseWidth(widthFlag); err != nil {
					return err
				}
				v, err = word.Parse(args[0], w)
			}
			if err != nil {
				return err
			}

			view, err := output.NewDigitsView(v)
			if err != nil {
				return err
			}
			return a.renderer.Render(view)
		},
	}

	cmd.Flags().StringVarP(&widthFlag, "width", "w", "", MsgFlagWidth)
	_ = cmd.RegisterFlagCompletionFunc("width", fixedCompletion(widthNames()...))

	return cmd
}
