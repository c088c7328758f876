package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/regexmark/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{name: "auto format", format: ui.FormatAuto, expected: "auto"},
		{name: "terminal format", format: ui.FormatTerminal, expected: "term"},
		{name: "text format", format: ui.FormatText, expected: "text"},
		{name: "html format", format: ui.FormatHTML, expected: "html"},
		{name: "unknown format", format: ui.Format(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{name: "parse auto", input: "auto", expected: ui.FormatAuto},
		{name: "parse empty string as auto", input: "", expected: ui.FormatAuto},
		{name: "parse term", input: "term", expected: ui.FormatTerminal},
		{name: "parse terminal", input: "terminal", expected: ui.FormatTerminal},
		{name: "parse text", input: "text", expected: ui.FormatText},
		{name: "parse plain", input: "plain", expected: ui.FormatText},
		{name: "parse html", input: "html", expected: ui.FormatHTML},
		{name: "parse mixed case HTML", input: "Html", expected: ui.FormatHTML},
		{name: "parse uppercase term", input: "TERM", expected: ui.FormatTerminal},
		{name: "parse invalid format", input: "json", expected: ui.FormatAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}
