// Package document describes the active document for path and frontmatter
// based rule gating.
package document

import (
	"bytes"
	"os"
	"regexp"

	"github.com/arthur-debert/regexmark/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Info is what auto-rules know about the document being rendered.
type Info struct {
	Path        string
	Frontmatter map[string]interface{}
}

// Property returns the frontmatter value stored under name, or nil.
func (i *Info) Property(name string) interface{} {
	if i == nil || i.Frontmatter == nil {
		return nil
	}
	return i.Frontmatter[name]
}

// frontmatterRE matches a complete YAML frontmatter block at the start of a
// file. The closing "---" must be unindented; an empty block is allowed.
var frontmatterRE = regexp.MustCompile(`(?s)\A---\r?\n(?:(.*?)\r?\n)??---[ \t]*(?:\r?\n|\z)`)

// Split separates a leading frontmatter block from the body. The returned
// yaml is empty when the document has none.
func Split(content []byte) (yamlBlock, body []byte) {
	loc := frontmatterRE.FindSubmatchIndex(content)
	if loc == nil {
		return nil, content
	}
	if loc[2] < 0 {
		return nil, content[loc[1]:]
	}
	return content[loc[2]:loc[3]], content[loc[1]:]
}

// Parse builds an Info for path from content and returns the body without
// its frontmatter.
func Parse(path string, content []byte) (*Info, []byte, error) {
	info := &Info{Path: path}
	block, body := Split(content)
	if len(bytes.TrimSpace(block)) == 0 {
		return info, body, nil
	}

	fm := map[string]interface{}{}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return info, body, errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse frontmatter of %s", path)
	}
	info.Frontmatter = fm
	return info, body, nil
}

// Load reads path from disk and parses it.
func Load(path string) (*Info, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read %s", path)
	}
	return Parse(path, content)
}
