package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"patterns.md":        {Data: []byte("# Patterns\n\nOpen and close placeholders.")},
		"option-mode.txt":    {Data: []byte("The --mode flag selects the view mode.")},
		"guides/styles.txt":  {Data: []byte("Styles map classes to colors.")},
		"notes.txxt":         {Data: []byte("not loaded by default")},
		"images/diagram.png": {Data: []byte{0x89}},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"patterns", true, "# Patterns\n\nOpen and close placeholders."},
			{"styles", true, "Styles map classes to colors."},
			{"notes", false, ""},
			{"diagram", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil file system", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"mode", "--mode", "-mode", "option-mode"} {
		t.Run(name, func(t *testing.T) {
			topic, ok := tm.GetTopic(name)
			require.True(t, ok)
			assert.Equal(t, "option-mode", topic.Name)
		})
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestTopicManager_ListTopics(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"option-mode", "patterns", "styles"}, tm.ListTopics())
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "app", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "render", Short: "Render a file", Run: func(cmd *cobra.Command, args []string) {}})
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return buf.String()
}

func TestInitialize_HelpCommand(t *testing.T) {
	t.Run("shows a topic", func(t *testing.T) {
		root := newRoot()
		require.NoError(t, Initialize(root, testFS()))
		out := execute(t, root, "help", "styles")
		assert.Equal(t, "Styles map classes to colors.", out)
	})

	t.Run("lists topics", func(t *testing.T) {
		root := newRoot()
		require.NoError(t, Initialize(root, testFS()))
		out := execute(t, root, "help", "topics")
		assert.Contains(t, out, "General topics:")
		assert.Contains(t, out, "  patterns")
		assert.Contains(t, out, "  --mode")
		assert.Contains(t, out, "Use 'app help <topic>'")
	})

	t.Run("falls back to command help", func(t *testing.T) {
		root := newRoot()
		require.NoError(t, Initialize(root, testFS()))
		out := execute(t, root, "help", "render")
		assert.Contains(t, out, "Render a file")
	})

	t.Run("empty topics", func(t *testing.T) {
		root := newRoot()
		require.NoError(t, Initialize(root, fstest.MapFS{}))
		out := execute(t, root, "help", "topics")
		assert.Contains(t, out, "No help topics available.")
	})
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# x", plain.Render("# x", ".md"))

	glam := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain text", glam.Render("plain text", ".txt"))
	out := glam.Render("# Title\n\nSome **bold** words.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}
