package rules_test

import (
	"testing"

	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"github.com/stretchr/testify/assert"
)

func TestAdmits(t *testing.T) {
	const prop = "regex_mark"

	doc := func(path string, fm map[string]interface{}) *document.Info {
		return &document.Info{Path: path, Frontmatter: fm}
	}

	tests := []struct {
		name  string
		auto  []rules.AutoRule
		doc   *document.Info
		admit bool
	}{
		{
			name:  "no document",
			auto:  []rules.AutoRule{{Type: rules.AutoRulePath, Value: "x"}},
			doc:   nil,
			admit: true,
		},
		{
			name:  "no path",
			auto:  []rules.AutoRule{{Type: rules.AutoRulePath, Value: "x"}},
			doc:   doc("", nil),
			admit: true,
		},
		{
			name:  "no auto rules",
			doc:   doc("a.md", nil),
			admit: true,
		},
		{
			name:  "path include matches",
			auto:  []rules.AutoRule{{Type: rules.AutoRulePath, Value: `^daily/`}},
			doc:   doc("daily/today.md", nil),
			admit: true,
		},
		{
			name:  "path exclude matches",
			auto:  []rules.AutoRule{{Type: rules.AutoRulePath, Value: `^daily/`, Exclude: true}},
			doc:   doc("daily/today.md", nil),
			admit: false,
		},
		{
			name:  "path exclude without match gives no decision",
			auto:  []rules.AutoRule{{Type: rules.AutoRulePath, Value: `^daily/`, Exclude: true}},
			doc:   doc("notes/a.md", nil),
			admit: false,
		},
		{
			name: "first deciding rule wins",
			auto: []rules.AutoRule{
				{Type: rules.AutoRulePath, Value: `^archive/`, Exclude: true},
				{Type: rules.AutoRulePath, Value: `\.md$`},
			},
			doc:   doc("archive/old.md", nil),
			admit: false,
		},
		{
			name: "invalid regex is skipped",
			auto: []rules.AutoRule{
				{Type: rules.AutoRulePath, Value: `(`},
				{Type: rules.AutoRulePath, Value: `\.md$`},
			},
			doc:   doc("a.md", nil),
			admit: true,
		},
		{
			name:  "frontmatter string",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `^fancy$`}},
			doc:   doc("a.md", map[string]interface{}{prop: "fancy"}),
			admit: true,
		},
		{
			name:  "frontmatter list",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `^b$`}},
			doc:   doc("a.md", map[string]interface{}{prop: []interface{}{"a", "b"}}),
			admit: true,
		},
		{
			name:  "frontmatter number",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `^42$`}},
			doc:   doc("a.md", map[string]interface{}{prop: 42}),
			admit: true,
		},
		{
			name:  "frontmatter map value",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `on`, Exclude: true}},
			doc:   doc("a.md", map[string]interface{}{prop: map[string]interface{}{"k": "on"}}),
			admit: false,
		},
		{
			name:  "frontmatter missing with exclude admits",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `x`, Exclude: true}},
			doc:   doc("a.md", map[string]interface{}{"other": "x"}),
			admit: true,
		},
		{
			name:  "frontmatter empty list with exclude admits",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `x`, Exclude: true}},
			doc:   doc("a.md", map[string]interface{}{prop: []interface{}{}}),
			admit: true,
		},
		{
			name:  "frontmatter missing without exclude",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `x`}},
			doc:   doc("a.md", nil),
			admit: false,
		},
		{
			name:  "frontmatter value does not match",
			auto:  []rules.AutoRule{{Type: rules.AutoRuleFrontmatter, Value: `^x$`}},
			doc:   doc("a.md", map[string]interface{}{prop: "y"}),
			admit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := rules.DefaultViewMode()
			vm.AutoRules = tt.auto
			assert.Equal(t, tt.admit, vm.Admits(tt.doc, prop))
		})
	}
}

func TestViewModeFlags(t *testing.T) {
	vm := rules.DefaultViewMode()
	assert.True(t, vm.ShowInCode())
	assert.False(t, vm.Off())

	vm.CodeBlock = rules.Bool(false)
	vm.Source = false
	assert.False(t, vm.ShowInCode())
	assert.False(t, vm.Enabled(rules.ModeSource))
	assert.True(t, vm.Enabled(rules.ModeLive))
}
