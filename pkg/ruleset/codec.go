package ruleset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/pattern"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"gopkg.in/yaml.v3"
)

// Format is a serialisation format for settings and rule bundles.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SettingsData is the persisted shape of a rule set.
type SettingsData struct {
	Mark         []RuleData       `json:"mark" yaml:"mark"`
	Pattern      *pattern.Pattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PropertyName string           `json:"propertyName,omitempty" yaml:"propertyName,omitempty"`
}

// RuleData is the persisted shape of a rule. Disable is only read.
type RuleData struct {
	Regex    string        `json:"regex" yaml:"regex"`
	Flags    FlagList      `json:"flags" yaml:"flags"`
	Class    string        `json:"class" yaml:"class"`
	Hide     bool          `json:"hide" yaml:"hide"`
	Disable  bool          `json:"disable,omitempty" yaml:"disable,omitempty"`
	ViewMode *ViewModeData `json:"viewMode,omitempty" yaml:"viewMode,omitempty"`
}

// ViewModeData is a view mode where absent flags mean enabled.
type ViewModeData struct {
	Reading   *bool            `json:"reading,omitempty" yaml:"reading,omitempty"`
	Source    *bool            `json:"source,omitempty" yaml:"source,omitempty"`
	Live      *bool            `json:"live,omitempty" yaml:"live,omitempty"`
	CodeBlock *bool            `json:"codeBlock,omitempty" yaml:"codeBlock,omitempty"`
	AutoRules []rules.AutoRule `json:"autoRules,omitempty" yaml:"autoRules,omitempty"`
}

// FlagList decodes from either a list of letters or a single string.
type FlagList []string

func (f *FlagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = splitFlags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = list
	return nil
}

func (f *FlagList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*f = splitFlags(value.Value)
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*f = list
	return nil
}

func splitFlags(s string) FlagList {
	out := FlagList{}
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

// Rule converts the persisted form, migrating the deprecated disable flag.
func (d RuleData) Rule() *rules.Rule {
	r := rules.New(d.Regex, d.Class)
	r.Hide = d.Hide
	if d.Flags != nil {
		r.Flags = rules.FlagsFrom(d.Flags)
	}

	switch {
	case d.ViewMode != nil:
		r.ViewMode = rules.ViewMode{
			Reading:   orTrue(d.ViewMode.Reading),
			Source:    orTrue(d.ViewMode.Source),
			Live:      orTrue(d.ViewMode.Live),
			CodeBlock: d.ViewMode.CodeBlock,
			AutoRules: d.ViewMode.AutoRules,
		}
	case d.Disable:
		logger := logging.GetLogger("ruleset.codec")
		logger.Warn().
			Str("class", d.Class).
			Msg("Deprecated disable option found, migrating it to viewMode")
		r.Disable()
	}
	return r
}

// FromRule converts a rule to its persisted form.
func FromRule(r *rules.Rule) RuleData {
	vm := r.ViewMode
	return RuleData{
		Regex: r.Pattern,
		Flags: FlagList(append([]string{}, r.Flags...)),
		Class: r.Class,
		Hide:  r.Hide,
		ViewMode: &ViewModeData{
			Reading:   rules.Bool(vm.Reading),
			Source:    rules.Bool(vm.Source),
			Live:      rules.Bool(vm.Live),
			CodeBlock: vm.CodeBlock,
			AutoRules: vm.AutoRules,
		},
	}
}

// Rules converts every persisted rule.
func (d *SettingsData) Rules() []*rules.Rule {
	out := make([]*rules.Rule, 0, len(d.Mark))
	for _, m := range d.Mark {
		out = append(out, m.Rule())
	}
	return out
}

// RuleSet builds a rule set, falling back to the default pattern.
func (d *SettingsData) RuleSet() *RuleSet {
	p := pattern.Default()
	if d.Pattern != nil {
		p = *d.Pattern
	}
	return New(d.Rules(), p, d.PropertyName)
}

// Data captures the rule set in its persisted form.
func (s *RuleSet) Data() *SettingsData {
	p := s.pattern
	d := &SettingsData{
		Mark:         make([]RuleData, 0, len(s.rules)),
		Pattern:      &p,
		PropertyName: s.propertyName,
	}
	for _, r := range s.rules {
		d.Mark = append(d.Mark, FromRule(r))
	}
	return d
}

// DetectFormat picks a format from the file extension, then from content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads settings or a rule bundle. Three shapes are accepted: a
// settings object, a single rule object (recognised by its "regex" key) and
// a bare array of rules. Shape errors carry the given code.
func Decode(data []byte, format Format, code errors.ErrorCode) (*SettingsData, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &SettingsData{}, nil
	}
	if format == FormatYAML {
		return decodeYAML(data, code)
	}
	return decodeJSON(data, code)
}

func decodeJSON(data []byte, code errors.ErrorCode) (*SettingsData, error) {
	trimmed := bytes.TrimSpace(data)
	switch trimmed[0] {
	case '[':
		var list []RuleData
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, errors.Wrap(err, code, "invalid rule list")
		}
		return &SettingsData{Mark: list}, nil
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return nil, errors.Wrap(err, code, "invalid settings object")
		}
		if _, single := keys["regex"]; single {
			var rd RuleData
			if err := json.Unmarshal(trimmed, &rd); err != nil {
				return nil, errors.Wrap(err, code, "invalid rule object")
			}
			return &SettingsData{Mark: []RuleData{rd}}, nil
		}
		var sd SettingsData
		if err := json.Unmarshal(trimmed, &sd); err != nil {
			return nil, errors.Wrap(err, code, "invalid settings object")
		}
		return &sd, nil
	}
	return nil, errors.New(code, "expected a settings object, a rule object or a list of rules")
}

func decodeYAML(data []byte, code errors.ErrorCode) (*SettingsData, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, code, "invalid YAML")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &SettingsData{}, nil
		}
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var list []RuleData
		if err := root.Decode(&list); err != nil {
			return nil, errors.Wrap(err, code, "invalid rule list")
		}
		return &SettingsData{Mark: list}, nil
	case yaml.MappingNode:
		if hasKey(root, "regex") {
			var rd RuleData
			if err := root.Decode(&rd); err != nil {
				return nil, errors.Wrap(err, code, "invalid rule object")
			}
			return &SettingsData{Mark: []RuleData{rd}}, nil
		}
		var sd SettingsData
		if err := root.Decode(&sd); err != nil {
			return nil, errors.Wrap(err, code, "invalid settings object")
		}
		return &sd, nil
	}
	return nil, errors.New(code, "expected a settings object, a rule object or a list of rules")
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Encode serialises settings data.
func Encode(d *SettingsData, format Format) ([]byte, error) {
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot encode YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot encode YAML")
		}
		return buf.Bytes(), nil
	}
	out, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot encode JSON")
	}
	return append(out, '\n'), nil
}

// Load reads the settings file at path. A missing file yields the default
// rule set.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger := logging.GetLogger("ruleset.codec")
		logger.Debug().Str("path", path).Msg("No settings file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "cannot read %s", path)
	}

	d, err := Decode(data, FormatJSON, errors.ErrSettingsParse)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsParse, "cannot parse %s", path)
	}
	return d.RuleSet(), nil
}

// Save writes s to path as JSON, creating the parent directory.
func Save(path string, s *RuleSet) error {
	data, err := Encode(s.Data(), FormatJSON)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "cannot create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "cannot write %s", path)
	}
	return nil
}

// Export serialises the whole set as a bundle.
func Export(s *RuleSet, format Format) ([]byte, error) {
	return Encode(s.Data(), format)
}

// ExportRules serialises selected rules as a bare list.
func ExportRules(rs []*rules.Rule, format Format) ([]byte, error) {
	list := make([]RuleData, 0, len(rs))
	for _, r := range rs {
		list = append(list, FromRule(r))
	}
	if format == FormatYAML {
		out, err := yaml.Marshal(list)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot encode YAML")
		}
		return out, nil
	}
	out, err := json.MarshalIndent(list, "", "\t")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot encode JSON")
	}
	return append(out, '\n'), nil
}
