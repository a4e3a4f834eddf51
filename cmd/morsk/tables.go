package morsk

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/output"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tables [NAME|PATH]",
		Short:   MsgTablesShort,
		Long:    MsgTablesLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			if err := a.load(cmd); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return a.registry().Names(), cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			reg := a.registry()

			if len(args) == 1 {
				tbl, err := reg.Get(args[0])
				if err != nil {
					return err
				}
				return a.renderer.Render(output.NewTableView(tbl))
			}

			list := output.TableList{}
			for _, name := range reg.Names() {
				tbl, err := reg.Get(name)
				if err != nil {
					return err
				}
				list.Tables = append(list.Tables, output.NewTableSummary(tbl))
			}
			return a.renderer.Render(list)
		},
	}
}
