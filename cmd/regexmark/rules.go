package regexmark

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/cobrax/topics"
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/arthur-debert/regexmark/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "rules",
	}
	cmd.AddCommand(
		newRulesListCmd(a),
		newRulesShowCmd(a),
		newRulesAddCmd(a),
		newRulesRemoveCmd(a),
		newRulesMoveCmd(a),
		newRulesValidateCmd(a),
		newRulesDuplicatesCmd(a),
	)
	return cmd
}

// ruleIndex parses a 1-based index as shown by `rules list`.
func ruleIndex(arg string, rs *ruleset.RuleSet) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > rs.Len() {
		return 0, errors.Newf(errors.ErrNotFound, MsgErrIndex, n, rs.Len()).WithDetail("arg", arg)
	}
	return n - 1, nil
}

func views(v rules.ViewMode) string {
	if v.Off() {
		return "off"
	}
	var on []string
	for _, m := range []rules.Mode{rules.ModeReading, rules.ModeSource, rules.ModeLive} {
		if v.Enabled(m) {
			on = append(on, string(m))
		}
	}
	if v.ShowInCode() {
		on = append(on, "code")
	}
	return strings.Join(on, ",")
}

func codeList(codes []errors.ErrorCode) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}

func status(r *rules.Rule, p pattern.Pattern) string {
	if errs := r.Errors(p); len(errs) > 0 {
		return codeList(errs)
	}
	if warns := r.Warnings(p); len(warns) > 0 {
		return "warn: " + codeList(warns)
	}
	return "ok"
}

func newRulesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgRulesListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if rs.Len() == 0 {
				_, err := fmt.Fprintln(w, MsgNoRules)
				return err
			}
			data := pterm.TableData{{"#", "Class", "Regex", "Flags", "Hide", "Views", "Status"}}
			for i, r := range rs.Rules() {
				data = append(data, []string{
					strconv.Itoa(i + 1),
					r.Class,
					r.Pattern,
					r.Flags.String(),
					strconv.FormatBool(r.Hide),
					views(r.ViewMode),
					status(r, rs.Pattern()),
				})
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, out)
			return err
		},
	}
}

// ruleReport describes one rule as markdown.
func ruleReport(index int, r *rules.Rule, p pattern.Pattern) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rule %d: %s\n\n", index+1, r.Class)
	fmt.Fprintf(&b, "- regex: `%s`\n", r.Pattern)
	if source, err := r.Resolve(p); err == nil && source != r.Pattern {
		fmt.Fprintf(&b, "- resolved: `/%s/%s`\n", source, r.Flags.Source())
	}
	fmt.Fprintf(&b, "- flags: %s\n", r.Flags.String())
	fmt.Fprintf(&b, "- hide delimiters: %t\n", r.Hide)
	fmt.Fprintf(&b, "- named groups: %t\n", r.HasNamedGroups(p))
	fmt.Fprintf(&b, "- views: %s\n", views(r.ViewMode))
	for _, ar := range r.ViewMode.AutoRules {
		verb := "include"
		if ar.Exclude {
			verb = "exclude"
		}
		fmt.Fprintf(&b, "- auto-rule: %s %s `%s`\n", verb, ar.Type, ar.Value)
	}

	codes := append(r.Errors(p), r.Warnings(p)...)
	if len(codes) > 0 {
		b.WriteString("\n## Problems\n\n")
		for _, c := range codes {
			kind := "error"
			if errors.IsWarning(c) {
				kind = "warning"
			}
			fmt.Fprintf(&b, "- %s `%s`: %s\n", kind, c, errors.Describe(c))
		}
	}
	return b.String()
}

func newRulesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: MsgRulesShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			i, err := ruleIndex(args[0], rs)
			if err != nil {
				return err
			}
			report := ruleReport(i, rs.At(i), rs.Pattern())
			if f, _ := ui.ParseFormat(a.cfg.Render.Format); f == ui.FormatTerminal || (f == ui.FormatAuto && isTerminal()) {
				report = topics.NewGlamourRenderer().Markdown(report)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report)
			return err
		},
	}
}

func newRulesAddCmd(a *app) *cobra.Command {
	var hide, noRead, noSource, noLive, noCode bool
	var flags string

	cmd := &cobra.Command{
		Use:     "add <regex> <class>",
		Short:   MsgRulesAddShort,
		Example: MsgRulesAddExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}

			r := rules.New(args[0], args[1])
			r.Hide = hide
			if cmd.Flags().Changed("flags") {
				r.Flags = rules.ParseFlags(flags)
			}
			r.ViewMode.Reading = !noRead
			r.ViewMode.Source = !noSource
			r.ViewMode.Live = !noLive
			if noCode {
				r.ViewMode.CodeBlock = rules.Bool(false)
			}
			rs.Add(r)
			if err := a.saveRules(rs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgRuleAdded, rs.Len(), r.Class)
			if errs := r.Errors(rs.Pattern()); len(errs) > 0 {
				fmt.Fprintf(w, MsgRuleAddedInvalid, rs.Len())
				for _, c := range errs {
					fmt.Fprintf(w, "  %s: %s\n", c, errors.Describe(c))
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&hide, "hide", false, MsgFlagHide)
	f.StringVar(&flags, "flags", "gi", MsgFlagFlags)
	f.BoolVar(&noRead, "no-reading", false, MsgFlagNoRead)
	f.BoolVar(&noSource, "no-source", false, MsgFlagNoSource)
	f.BoolVar(&noLive, "no-live", false, MsgFlagNoLive)
	f.BoolVar(&noCode, "no-code", false, MsgFlagNoCode)
	return cmd
}

func newRulesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   MsgRulesRemoveShort,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			i, err := ruleIndex(args[0], rs)
			if err != nil {
				return err
			}
			r := rs.At(i)
			rs.RemoveAt(i)
			if err := a.saveRules(rs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgRuleRemoved, i+1, r.Class)
			return nil
		},
	}
}

func newRulesMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "move <index> up|down",
		Short:     MsgRulesMoveShort,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int
			switch strings.ToLower(args[1]) {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return errors.Newf(errors.ErrInvalidInput, MsgErrDirection, args[1])
			}

			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			i, err := ruleIndex(args[0], rs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !rs.MoveAt(i, delta) {
				fmt.Fprintf(w, MsgRuleNotMoved, i+1)
				return nil
			}
			if err := a.saveRules(rs); err != nil {
				return err
			}
			fmt.Fprintf(w, MsgRuleMoved, i+1, i+1+delta)
			return nil
		},
	}
}

func newRulesValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check"},
		Short:   MsgRulesCheckShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			p := rs.Pattern()
			for _, c := range p.Validate() {
				fmt.Fprintf(w, "pattern: %s: %s\n", c, errors.Describe(c))
			}

			failing := 0
			for _, d := range rs.Diagnostics() {
				r := rs.At(d.Index)
				if len(r.Errors(p)) > 0 {
					failing++
				}
				for _, c := range d.Codes {
					fmt.Fprintf(w, "rule %d (%s): %s: %s\n", d.Index+1, r.Class, c, errors.Describe(c))
				}
			}
			if failing > 0 || !p.IsValid() {
				return errors.Newf(errors.ErrInvalidInput, MsgErrRulesCheck, failing).
					WithDetail("codes", rs.Errors())
			}
			fmt.Fprintf(w, MsgRulesValid, rs.Len())
			return nil
		},
	}
}

func newRulesDuplicatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: MsgRulesDupShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			dups := rs.FindDuplicateIndexes()
			if len(dups) == 0 {
				_, err := fmt.Fprintln(w, MsgNoDuplicates)
				return err
			}
			for _, i := range dups {
				fmt.Fprintf(w, MsgDuplicateItem, i+1, rs.At(i).Pattern)
			}
			return nil
		},
	}
}
