package live_test

import (
	"testing"

	"github.com/arthur-debert/regexmark/pkg/adapters/live"
	"github.com/arthur-debert/regexmark/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments_InlineCode(t *testing.T) {
	blocks := live.Segments("a `b` c ``d`e`` f `g", 10, "")
	require.Len(t, blocks, 1)
	assert.Equal(t, []scanner.Segment{
		{Text: "a ", Offset: 10},
		{Text: "`b`", Offset: 12, Code: true},
		{Text: " c ", Offset: 15},
		{Text: "``d`e``", Offset: 18, Code: true},
		{Text: " f `g", Offset: 25},
	}, blocks[0].Segments)
}

func TestSegments_Fences(t *testing.T) {
	blocks := live.Segments("x\n~~~~\ny\n~~~\nz\n~~~~\nw", 0, "")
	var got []string
	var code []bool
	for _, b := range blocks {
		require.Len(t, b.Segments, 1)
		got = append(got, b.Segments[0].Text)
		code = append(code, b.Segments[0].Code)
	}
	assert.Equal(t, []string{"x", "~~~~", "y", "~~~", "z", "~~~~", "w"}, got)
	assert.Equal(t, []bool{false, true, true, true, true, true, false}, code)
}

func TestSegments_FenceStateFromEarlierText(t *testing.T) {
	blocks := live.Segments("inside\n```\nafter", 20, "text\n```go\n")
	require.Len(t, blocks, 3)
	assert.True(t, blocks[0].Segments[0].Code)
	assert.True(t, blocks[1].Segments[0].Code)
	assert.False(t, blocks[2].Segments[0].Code)
	assert.Equal(t, 31, blocks[2].Segments[0].Offset)
}
