package regexmark

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/regexmark/pkg/adapters/live"
	"github.com/arthur-debert/regexmark/pkg/adapters/static"
	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/arthur-debert/regexmark/pkg/scanner"
	"github.com/arthur-debert/regexmark/pkg/ui/json"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var sanitize bool

	cmd := &cobra.Command{
		Use:     "render <file>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, body, err := document.Load(args[0])
			if err != nil {
				return err
			}

			html, err := static.RenderMarkdown(body)
			if err != nil {
				return err
			}
			clean := a.cfg.Render.Sanitize
			if cmd.Flags().Changed("sanitize") {
				clean = sanitize
			}
			if clean {
				html = static.Sanitize(html)
			}

			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			sc := scanner.New(rs, a.notifier(cmd.ErrOrStderr()))
			processor := static.New(sc, scanner.Pass{Mode: a.cfg.ViewMode(), Document: info})
			decorated, err := processor.ProcessHTML(html)
			if err != nil {
				return err
			}
			logger := logging.WithFields(map[string]interface{}{"file": args[0], "mode": a.cfg.ViewMode()})
			logger.Debug().Msg("Rendered document")

			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderDocument(decorated)
		},
	}

	cmd.Flags().BoolVar(&sanitize, "sanitize", true, MsgFlagSanitize)
	return cmd
}

func newScanCmd(a *app) *cobra.Command {
	var cursor int
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "scan <file>",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrNotFound, "cannot read %s", args[0])
			}
			info, _, err := document.Parse(args[0], content)
			if err != nil {
				return err
			}

			buf := live.NewBuffer(string(content))
			buf.Doc = info
			if cursor >= 0 {
				buf.SetCursor(cursor)
			}

			rs, err := a.loadRules()
			if err != nil {
				return err
			}
			mode := rules.ModeLive
			if a.mode != "" {
				mode = a.cfg.ViewMode()
			}
			adapter := live.New(scanner.New(rs, a.notifier(cmd.ErrOrStderr())), mode, buf, buf, buf)
			if asJSON {
				return json.New(cmd.OutOrStdout()).RenderSpans(spans(rs, adapter.Specs()))
			}
			return printSpecs(cmd.OutOrStdout(), adapter.Specs())
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, MsgFlagCursor)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func kindName(k live.Kind) string {
	if k == live.Replace {
		return "replace"
	}
	return "mark"
}

func spans(rs *ruleset.RuleSet, specs []live.Spec) []json.Span {
	out := make([]json.Span, len(specs))
	for i, s := range specs {
		out[i] = json.Span{
			From:  s.From,
			To:    s.To,
			Kind:  kindName(s.Kind),
			Class: s.Class,
			Text:  s.Text,
			HTML:  s.HTML,
			Rule:  rs.IndexOf(s.Rule),
		}
	}
	return out
}

func printSpecs(w io.Writer, specs []live.Spec) error {
	if len(specs) == 0 {
		_, err := fmt.Fprintln(w, MsgNoDecorations)
		return err
	}
	data := pterm.TableData{{"Range", "Kind", "Class", "Text"}}
	for _, s := range specs {
		data = append(data, []string{
			fmt.Sprintf("%d-%d", s.From, s.To),
			kindName(s.Kind),
			s.Class,
			fmt.Sprintf("%q", s.Text),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
