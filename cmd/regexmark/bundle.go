package regexmark

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "import <file>",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrNotFound, "cannot read %s", args[0])
			}
			bundle, err := ruleset.Decode(data, ruleset.DetectFormat(args[0], data), errors.ErrMergeShape)
			if err != nil {
				return err
			}

			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			disabled, err := rs.Merge(bundle)
			if err != nil {
				printMergeFailures(cmd, err)
				return err
			}
			if err := a.saveRules(rs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgImported, len(bundle.Mark))
			if len(disabled) > 0 {
				fmt.Fprintf(w, MsgPatternDisabled, len(disabled))
				for _, r := range disabled {
					fmt.Fprintf(w, "  %d: %s (%s)\n", rs.IndexOf(r)+1, r.Pattern, r.Class)
				}
			}
			return nil
		},
	}
}

// printMergeFailures lists every problem aggregated in a rejected bundle.
func printMergeFailures(cmd *cobra.Command, err error) {
	var merr *errors.MarkError
	if !stderrors.As(err, &merr) || merr.Wrapped == nil {
		return
	}
	printer := pterm.Error.WithWriter(cmd.ErrOrStderr())
	for _, e := range multierr.Errors(merr.Wrapped) {
		printer.Println(e.Error())
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		as     string
		output string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   MsgExportShort,
		Args:    cobra.NoArgs,
		GroupID: "rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := ruleset.Format(strings.ToLower(as))
			if format != ruleset.FormatJSON && format != ruleset.FormatYAML {
				return errors.Newf(errors.ErrInvalidInput, "unknown export format: %s", as)
			}
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			data, err := ruleset.Export(rs, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrSettingsSave, "cannot write %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", string(ruleset.FormatJSON), MsgFlagExportAs)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}
