// Package styles maps decoration classes to terminal styles.
//
// Styles are defined in YAML with adaptive colors that follow the terminal's
// light or dark background. A built-in set is embedded in the binary; users
// can layer their own file on top of it, class by class:
//
//	colors:
//	  pink: {light: "#d63384", dark: "#f783ac"}
//	styles:
//	  highlight: {background: pink, bold: true}
package styles

import (
	_ "embed"
	"os"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color definition.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes the style applied to one class.
type StyleDef struct {
	Bold          bool   `yaml:"bold,omitempty"`
	Italic        bool   `yaml:"italic,omitempty"`
	Underline     bool   `yaml:"underline,omitempty"`
	Strikethrough bool   `yaml:"strikethrough,omitempty"`
	Faint         bool   `yaml:"faint,omitempty"`
	Foreground    string `yaml:"foreground,omitempty"`
	Background    string `yaml:"background,omitempty"`
}

// Config is the content of a styles file.
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry resolves class names to lipgloss styles.
type Registry struct {
	colors map[string]lipgloss.AdaptiveColor
	defs   map[string]StyleDef
	styles map[string]lipgloss.Style
}

// Default returns the registry built from the embedded styles.
func Default() *Registry {
	r, err := Parse(defaultStyles)
	if err != nil {
		panic("embedded styles.yaml: " + err.Error())
	}
	return r
}

// Parse builds a registry from YAML data.
func Parse(data []byte) (*Registry, error) {
	r := &Registry{
		colors: map[string]lipgloss.AdaptiveColor{},
		defs:   map[string]StyleDef{},
	}
	if err := r.Merge(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Load returns the default registry overlaid with the file at path. An
// empty path yields the defaults.
func Load(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read styles file %s", path)
	}
	if err := r.Merge(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Merge overlays the colors and styles of data onto r. Later definitions
// replace earlier ones for the same name.
func (r *Registry) Merge(data []byte) error {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "cannot parse styles")
	}
	for name, def := range cfg.Colors {
		r.colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range cfg.Styles {
		r.defs[name] = def
	}

	// colors may have changed under existing definitions
	r.styles = make(map[string]lipgloss.Style, len(r.defs))
	for name, def := range r.defs {
		r.styles[name] = r.build(def)
	}
	return nil
}

func (r *Registry) color(name string) lipgloss.TerminalColor {
	if c, ok := r.colors[name]; ok {
		return c
	}
	// allow literal colors such as "#ff0000" or "212"
	return lipgloss.Color(name)
}

func (r *Registry) build(def StyleDef) lipgloss.Style {
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Strikethrough {
		style = style.Strikethrough(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}
	if def.Foreground != "" {
		style = style.Foreground(r.color(def.Foreground))
	}
	if def.Background != "" {
		style = style.Background(r.color(def.Background))
	}
	return style
}

// Has reports whether a style is defined for class.
func (r *Registry) Has(class string) bool {
	_, ok := r.styles[class]
	return ok
}

// Get returns the style of class, or a plain style when undefined.
func (r *Registry) Get(class string) lipgloss.Style {
	if style, ok := r.styles[class]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Combine merges the styles of classes, innermost last. Properties set by
// later classes win.
func (r *Registry) Combine(classes ...string) lipgloss.Style {
	result := lipgloss.NewStyle()
	for i := len(classes) - 1; i >= 0; i-- {
		result = result.Inherit(r.Get(classes[i]))
	}
	return result
}

// Names lists the defined class names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	return names
}
