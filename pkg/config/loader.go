package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/paths"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/arthur-debert/regexmark/pkg/ruleset"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGEXMARK_"

// userConfigNames are tried in order inside the config directory.
var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// Options select the optional layers of a load.
type Options struct {
	// File replaces the user config file lookup when set.
	File string
	// Overrides are dotted keys applied last, typically from flags.
	Overrides map[string]interface{}
}

// LoadConfiguration builds the effective configuration.
func LoadConfiguration(opts Options) (*Config, error) {
	log := logging.GetLogger("config")

	// 1. Embedded defaults
	base, err := parseDefaults()
	if err != nil {
		return nil, err
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = findUserConfig(paths.ConfigDir())
	}
	if path != "" {
		user, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("Loaded user config")
		mergeMaps(base, user)
	}

	// 3. Environment
	tempK := koanf.New(".")
	err = tempK.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	mergeMaps(base, tempK.Raw())

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		mergeMaps(base, unflattenMap(opts.Overrides))
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load merged config")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps REGEXMARK_RENDER_FORMAT to render.format. Only the first
// underscore separates section from key, so REGEXMARK_SETTINGS_PROPERTY_NAME
// reaches settings.property_name. The path overrides handled by pkg/paths
// are not configuration keys.
func envKey(s string) string {
	switch s {
	case paths.EnvConfigDir, paths.EnvStateDir:
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func parseDefaults() (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded defaults do not parse")
	}
	return k.Raw(), nil
}

func findUserConfig(dir string) string {
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func loadFile(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return k.Raw(), nil
}

func mergeMaps(dest, src map[string]interface{}) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]interface{}); ok {
			if destMap, ok := dest[key].(map[string]interface{}); ok {
				mergeMaps(destMap, srcMap)
				continue
			}
		}
		dest[key] = srcVal
	}
}

func unflattenMap(flat map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for key, value := range flat {
		parts := strings.Split(key, ".")
		curr := result
		for _, part := range parts[:len(parts)-1] {
			next, ok := curr[part].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				curr[part] = next
			}
			curr = next
		}
		curr[parts[len(parts)-1]] = value
	}
	return result
}

func postProcessConfig(cfg *Config) error {
	if cfg.Render.Mode != "" && rules.ParseMode(cfg.Render.Mode) == "" {
		return errors.Newf(errors.ErrConfigParse, "unknown render mode %q", cfg.Render.Mode).
			WithDetail("key", "render.mode")
	}
	if cfg.Render.Width < 0 {
		return errors.Newf(errors.ErrConfigParse, "render width must not be negative, got %d", cfg.Render.Width).
			WithDetail("key", "render.width")
	}
	if cfg.Settings.PropertyName == "" {
		cfg.Settings.PropertyName = ruleset.DefaultPropertyName
	}
	return nil
}
