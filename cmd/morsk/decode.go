package morsk

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/morsk/pkg/errors"
	"github.com/arthur-debert/morsk/pkg/output"
	"github.com/arthur-debert/morsk/pkg/table"
	"github.com/arthur-debert/morsk/pkg/word"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		tableFlag string
		all       bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:     "decode [WORD...]",
		Short:   MsgDecodeShort,
		Long:    MsgDecodeLong,
		Example: MsgDecodeExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			ref := tableFlag
			if ref == "" {
				ref = a.cfg.Tables.Default
			}
			tbl, err := a.registry().Get(ref)
			if err != nil {
				return err
			}

			texts := args
			if len(texts) == 0 {
				if texts, err = readWords(cmd.InOrStdin()); err != nil {
					return fmt.Errorf(MsgErrReadStdin, err)
				}
			}
			if len(texts) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoWords)
			}

			values := make([]word.Value, len(texts))
			for i, text := range texts {
				if values[i], err = word.Parse(text, tbl.Width); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Decode.Workers
			}
			log.Debug().
				Str("table", tbl.Name).
				Int("words", len(values)).
				Bool("all", all).
				Msg("Decoding")

			var view output.DecodeView
			if all {
				view, err = decodeAll(tbl, values)
			} else {
				var decoded []table.Decoded
				decoded, err = tbl.DecodeMany(cmd.Context(), values, workers)
				view = output.NewDecodeView(tbl, decoded)
			}
			if err != nil {
				return err
			}

			if err := a.renderer.Render(view); err != nil {
				return err
			}
			for _, row := range view.Results {
				if !row.Matched {
					return ErrNoMatch
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tableFlag, "table", "t", "", MsgFlagTable)
	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, MsgFlagWorkers)
	_ = cmd.RegisterFlagCompletionFunc("table", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := a.load(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return a.registry().Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// decodeAll lists every entry each word matches, one row per entry, with
// a single unmatched row for words that match none.
func decodeAll(tbl *table.Table, values []word.Value) (output.DecodeView, error) {
	view := output.DecodeView{Table: tbl.Name}
	for _, v := range values {
		results, err := tbl.DecodeAll(v)
		if err != nil {
			return output.DecodeView{}, err
		}
		if len(results) == 0 {
			view.Results = append(view.Results, output.NewDecodeRow(v.String(), table.Result{}, false))
			continue
		}
		for _, res := range results {
			view.Results = append(view.Results, output.NewDecodeRow(v.String(), res, true))
		}
	}
	return view, nil
}

// readWords splits r on white space. Lines starting with # are skipped.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	return words, scanner.Err()
}
