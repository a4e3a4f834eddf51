package morsk

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/config"
	"github.com/arthur-debert/morsk/pkg/output"
	"github.com/arthur-debert/morsk/pkg/paths"
)

func newConfigCmd(a *app) *cobra.Command {
	var initFile, force, showPath bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configFile
			if path == "" {
				path = paths.ConfigFile()
			}

			switch {
			case showPath:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			case initFile:
				if err := config.WriteUserFile(path, force); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
				return err
			}

			if err := a.load(cmd); err != nil {
				return err
			}
			return a.renderer.Render(output.ConfigView{Source: a.cfg.Source, Settings: a.cfg})
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, MsgFlagInit)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&showPath, "path", false, MsgFlagPath)

	return cmd
}
