package regexmark

import (
	"io"

	"github.com/arthur-debert/regexmark/pkg/config"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/arthur-debert/regexmark/pkg/scanner"
	"github.com/arthur-debert/regexmark/pkg/ui"
	"github.com/arthur-debert/regexmark/pkg/ui/styles"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app holds the global flags and the configuration they resolve to.
type app struct {
	verbosity    int
	configFile   string
	settingsFile string
	format       string
	mode         string
	styles       string
	width        int

	cfg *config.Config
}

// flagKeys maps global flags onto configuration keys.
var flagKeys = map[string]string{
	"format": "render.format",
	"mode":   "render.mode",
	"styles": "render.styles",
	"width":  "render.width",
}

func (a *app) overrides(cmd *cobra.Command) map[string]interface{} {
	values := map[string]interface{}{
		"format": a.format,
		"mode":   a.mode,
		"styles": a.styles,
		"width":  a.width,
	}
	out := map[string]interface{}{}
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			out[key] = values[flag]
		}
	}
	if a.settingsFile != "" {
		out["settings.path"] = a.settingsFile
	}
	return out
}

// setup loads the configuration and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfiguration(config.Options{
		File:      a.configFile,
		Overrides: a.overrides(cmd),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.SetupLogger(max(a.verbosity, cfg.Logging.Verbosity))

	if f, _ := ui.ParseFormat(cfg.Render.Format); f != ui.FormatTerminal && !isTerminal() {
		pterm.DisableStyling()
	}
	return nil
}

// loadRules reads the settings file. The configured property name applies
// when the file does not set one.
func (a *app) loadRules() (*ruleset.RuleSet, error) {
	rs, err := ruleset.Load(a.cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	if rs.PropertyName() == ruleset.DefaultPropertyName {
		rs.SetPropertyName(a.cfg.Settings.PropertyName)
	}
	return rs, nil
}

func (a *app) saveRules(rs *ruleset.RuleSet) error {
	return ruleset.Save(a.cfg.SettingsPath(), rs)
}

// notifier prints each runtime problem once per command.
func (a *app) notifier(w io.Writer) scanner.Notifier {
	return scanner.Once(scanner.NotifyFunc(func(key, message string) {
		pterm.Warning.WithWriter(w).Println(message)
	}))
}

func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.cfg.Render.Format)
	if err != nil {
		return nil, err
	}
	reg, err := styles.Load(a.cfg.Render.Styles)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w, ui.Options{Styles: reg, Width: a.cfg.Render.Width})
}
