package config

import (
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Show serialises cfg as TOML, in the layout of the defaults file.
func Show(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot serialise configuration")
	}
	return string(data), nil
}
