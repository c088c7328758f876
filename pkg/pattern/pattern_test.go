package pattern

import (
	"testing"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		want    []errors.ErrorCode
	}{
		{
			name:    "default is valid",
			pattern: Default(),
			want:    nil,
		},
		{
			name:    "brackets are valid",
			pattern: Pattern{Open: `\[\[open:(.*?)\]\]`, Close: `\[\[close:(.*?)\]\]`},
			want:    nil,
		},
		{
			name:    "empty open",
			pattern: Pattern{Open: "  ", Close: DefaultClose},
			want:    []errors.ErrorCode{errors.ErrPatternEmpty},
		},
		{
			name:    "does not compile",
			pattern: Pattern{Open: `(open:(.*?)`, Close: DefaultClose},
			want:    []errors.ErrorCode{errors.ErrPatternInvalid},
		},
		{
			name:    "markers swapped",
			pattern: Pattern{Open: DefaultClose, Close: DefaultOpen},
			want:    []errors.ErrorCode{errors.ErrPatternNotOpen, errors.ErrPatternNotClose},
		},
		{
			name:    "no enclosing characters",
			pattern: Pattern{Open: `open:(.*?)`, Close: DefaultClose},
			want:    []errors.ErrorCode{errors.ErrPatternNeedChar},
		},
		{
			name:    "no group",
			pattern: Pattern{Open: `{{open:}}`, Close: DefaultClose},
			want:    []errors.ErrorCode{errors.ErrPatternWithoutGroup},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Validate())
			assert.Equal(t, len(tt.want) == 0, tt.pattern.IsValid())
		})
	}
}

func TestNormalize(t *testing.T) {
	p := Pattern{Open: `<<open:(.*)>>`, Close: `<<close:(.*?)>>`}.Normalize()
	assert.Equal(t, `<<open:(.*?)>>`, p.Open)
	assert.Equal(t, `<<close:(.*?)>>`, p.Close)
}

func TestResolve(t *testing.T) {
	p := Default()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no placeholders", `\*\*(.+?)\*\*`, `\*\*(.+?)\*\*`},
		{"both placeholders", `{{open:_}}(.*?){{close:_}}`, `(_)(.*?)(_)`},
		{"escaped fragments", `{{open:\*\*}}(?<b>.*?){{close:\*\*}}`, `(\*\*)(?<b>.*?)(\*\*)`},
		{"open only", `{{open:~}}(.+)`, `(~)(.+)`},
		{"only first occurrence", `{{open:a}}x{{open:b}}`, `(a)x{{open:b}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_InvalidFragment(t *testing.T) {
	_, err := Default().Resolve(`{{open:(}}x{{close:_}}`)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestSubDelimiters(t *testing.T) {
	d, err := Default().SubDelimiters(`{{open:__}}(.*?){{close:__}}`, "gi")
	require.NoError(t, err)
	require.True(t, d.Any())

	m, err := d.Open.FindStringMatch("__bold__")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Index)
	assert.Equal(t, 2, m.Length)

	m, err = d.Close.FindStringMatch("__bold__")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 6, m.Index)

	none, err := Default().SubDelimiters(`(?<x>abc)`, "")
	require.NoError(t, err)
	assert.False(t, none.Any())
}

func TestSubDelimiters_CaseFlag(t *testing.T) {
	raw := `{{open:x}}(.+?){{close:x}}`

	folded, err := Default().SubDelimiters(raw, "gi")
	require.NoError(t, err)
	m, err := folded.Open.FindStringMatch("XyX")
	require.NoError(t, err)
	assert.NotNil(t, m)
	m, err = folded.Close.FindStringMatch("XyX")
	require.NoError(t, err)
	assert.NotNil(t, m)

	exact, err := Default().SubDelimiters(raw, "gm")
	require.NoError(t, err)
	m, err = exact.Open.FindStringMatch("XyX")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestSimplified(t *testing.T) {
	p := Pattern{Open: `\[\[open:(.*?)\]\]`, Close: `\[\[close:(.*?)\]\]`}
	assert.Equal(t, Pattern{Open: `[[open:$1]]`, Close: `[[close:$1]]`}, p.Simplified())
	assert.Equal(t, Pattern{Open: `{{open:$1}}`, Close: `{{close:$1}}`}, Default().Simplified())
}

func TestRewrite(t *testing.T) {
	next := Pattern{Open: `\[\[open:(.*?)\]\]`, Close: `\[\[close:(.*?)\]\]`}

	got, err := Default().Rewrite(`{{open:_}}(?<c>.*?){{close:_}}`, next)
	require.NoError(t, err)
	assert.Equal(t, `[[open:_]](?<c>.*?)[[close:_]]`, got)

	resolved, err := next.Resolve(got)
	require.NoError(t, err)
	assert.Equal(t, `(_)(?<c>.*?)(_)`, resolved)

	untouched, err := Default().Rewrite(`==(?<hl>.+?)==`, next)
	require.NoError(t, err)
	assert.Equal(t, `==(?<hl>.+?)==`, untouched)
}
