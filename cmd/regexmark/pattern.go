package regexmark

import (
	"fmt"

	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/spf13/cobra"
)

func newPatternCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pattern",
		Short:   MsgPatternShort,
		Long:    MsgPatternLong,
		GroupID: "rules",
	}
	cmd.AddCommand(newPatternShowCmd(a), newPatternSetCmd(a))
	return cmd
}

func newPatternShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgPatternShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			p := rs.Pattern()
			simple := p.Simplified()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "open:  %s\n", p.Open)
			fmt.Fprintf(w, "close: %s\n", p.Close)
			fmt.Fprintf(w, "usage: %s ... %s\n", simple.Open, simple.Close)
			return nil
		},
	}
}

func newPatternSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <open> <close>",
		Short: MsgPatternSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			disabled, err := rs.ChangePattern(pattern.Pattern{Open: args[0], Close: args[1]})
			if err != nil {
				return err
			}
			if err := a.saveRules(rs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			simple := rs.Pattern().Simplified()
			fmt.Fprintf(w, MsgPatternChanged, simple.Open, simple.Close)
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
