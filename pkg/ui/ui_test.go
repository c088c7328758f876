package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arthur-debert/regexmark/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decorated = `<p>see <span class="highlight" data-contents="this" data-processed="true">this</span> now</p>`

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "terminal renderer", format: ui.FormatTerminal},
		{name: "text renderer", format: ui.FormatText},
		{name: "html renderer", format: ui.FormatHTML},
		{name: "auto renderer with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf, ui.Options{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestRenderers_Document(t *testing.T) {
	t.Run("auto on a buffer renders plain text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		r, err := ui.NewRenderer(ui.FormatAuto, buf, ui.Options{})
		require.NoError(t, err)
		require.NoError(t, r.RenderDocument(decorated))
		assert.Equal(t, "see this now\n", buf.String())
	})

	t.Run("html passes markup through", func(t *testing.T) {
		buf := &bytes.Buffer{}
		r, err := ui.NewRenderer(ui.FormatHTML, buf, ui.Options{})
		require.NoError(t, err)
		require.NoError(t, r.RenderDocument(decorated))
		assert.Equal(t, decorated+"\n", buf.String())
	})

	t.Run("terminal keeps the visible text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		r, err := ui.NewRenderer(ui.FormatTerminal, buf, ui.Options{})
		require.NoError(t, err)
		require.NoError(t, r.RenderDocument(decorated))
		assert.Contains(t, buf.String(), "this")
		assert.Contains(t, buf.String(), "see ")
	})
}

func TestRenderers_Messages(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatHTML} {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			r, err := ui.NewRenderer(format, buf, ui.Options{})
			require.NoError(t, err)

			require.NoError(t, r.RenderMessage("hello"))
			require.NoError(t, r.RenderError(errors.New("boom")))
			assert.Contains(t, buf.String(), "hello")
			assert.Contains(t, buf.String(), "boom")
		})
	}
}
