// Package config handles configuration management for regexmark.
// It layers embedded defaults, the user's config file, REGEXMARK_*
// environment variables and command-line overrides, in that order.
package config
