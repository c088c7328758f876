// Test Type: Integration Test
// Description: Tests for the command line, run against temporary settings

package regexmark

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/regexmark/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points configuration, settings and logs at temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv(paths.EnvStateDir, t.TempDir())
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoot_NoCommand(t *testing.T) {
	isolate(t)
	_, _, err := run(t)
	assert.Error(t, err)
}

func TestRules_AddAndList(t *testing.T) {
	dir := isolate(t)

	out := mustRun(t, "rules", "add", "==(.+?)==", "highlight")
	assert.Equal(t, "Added rule 1: highlight\n", out)
	assert.FileExists(t, filepath.Join(dir, paths.SettingsFileName))

	out = mustRun(t, "rules", "list")
	assert.Contains(t, out, "highlight")
	assert.Contains(t, out, "==(.+?)==")
	assert.Contains(t, out, "reading,source,live,code")
	assert.Contains(t, out, "ok")
}

func TestRules_ListEmpty(t *testing.T) {
	isolate(t)
	out := mustRun(t, "rules", "list")
	assert.Equal(t, MsgNoRules+"\n", out)
}

func TestRules_AddOptions(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "--flags", "m", "--no-source", "--no-code", "TODO", "todo")

	out := mustRun(t, "export")
	assert.Contains(t, out, `"source": false`)
	assert.Contains(t, out, `"codeBlock": false`)
	assert.Contains(t, out, `"m"`)
}

func TestRules_InvalidRuleFailsValidation(t *testing.T) {
	isolate(t)
	out := mustRun(t, "rules", "add", "(", "broken")
	assert.Contains(t, out, "has errors")

	out, _, err := run(t, "rules", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "rule 1 (broken)")
}

func TestRules_Validate(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "==(.+?)==", "hl")
	out := mustRun(t, "rules", "validate")
	assert.Equal(t, "All 1 rules are valid.\n", out)
}

func TestRules_MoveAndRemove(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "aaa", "first")
	mustRun(t, "rules", "add", "bbb", "second")

	out := mustRun(t, "rules", "move", "2", "up")
	assert.Equal(t, "Moved rule 2 to 1\n", out)
	exported := mustRun(t, "export")
	assert.Less(t, strings.Index(exported, "second"), strings.Index(exported, "first"))

	out = mustRun(t, "rules", "move", "1", "up")
	assert.Equal(t, "Rule 1 is already at the edge\n", out)

	_, _, err := run(t, "rules", "move", "1", "sideways")
	assert.Error(t, err)

	out = mustRun(t, "rules", "remove", "1")
	assert.Contains(t, out, "second")
	exported = mustRun(t, "export")
	assert.NotContains(t, exported, "second")
	assert.Contains(t, exported, "first")

	_, _, err = run(t, "rules", "remove", "5")
	assert.Error(t, err)
}

func TestRules_Duplicates(t *testing.T) {
	isolate(t)
	out := mustRun(t, "rules", "duplicates")
	assert.Equal(t, MsgNoDuplicates+"\n", out)

	mustRun(t, "rules", "add", "x+", "a")
	mustRun(t, "rules", "add", "y+", "b")
	mustRun(t, "rules", "add", "x+", "c")
	out = mustRun(t, "rules", "duplicates")
	assert.Equal(t, "  1: x+\n  3: x+\n", out)
}

func TestRules_Show(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "--hide", "{{open:_}}(.+?){{close:_}}", "italic")

	out := mustRun(t, "--format", "text", "rules", "show", "1")
	assert.Contains(t, out, "# Rule 1: italic")
	assert.Contains(t, out, "/(_)(.+?)(_)/gid")
	assert.Contains(t, out, "hide delimiters: true")
}

func TestPattern_SetMigratesRules(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "{{open:_}}(.+?){{close:_}}", "italic")

	out := mustRun(t, "pattern", "set", `\[\[open:(.*?)\]\]`, `\[\[close:(.*?)\]\]`)
	assert.Contains(t, out, "Pattern changed to [[open:$1]] ... [[close:$1]]")

	exported := mustRun(t, "export")
	assert.Contains(t, exported, "[[open:_]](.+?)[[close:_]]")

	out = mustRun(t, "pattern", "show")
	assert.Contains(t, out, "usage: [[open:$1]] ... [[close:$1]]")
}

func TestPattern_SetRejectsInvalid(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "pattern", "set", "no-marker(.*?)", `{{close:(.*?)}}`)
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	isolate(t)
	bundle := writeFile(t, "bundle.yaml", "mark:\n  - regex: TODO\n    class: todo\n")

	out := mustRun(t, "import", bundle)
	assert.Equal(t, "Imported 1 rule(s).\n", out)
	assert.Contains(t, mustRun(t, "rules", "list"), "todo")

	_, stderr, err := run(t, "import", bundle)
	require.Error(t, err)
	assert.Contains(t, stderr, "duplicates")
}

func TestImport_BadShape(t *testing.T) {
	isolate(t)
	bundle := writeFile(t, "bundle.json", `42`)
	_, _, err := run(t, "import", bundle)
	assert.Error(t, err)
}

func TestExport_YAMLToFile(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "TODO", "todo")

	target := filepath.Join(t.TempDir(), "out.yaml")
	out := mustRun(t, "export", "--as", "yaml", "-o", target)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mark:")
	assert.Contains(t, string(data), "class: todo")

	_, _, err = run(t, "export", "--as", "xml")
	assert.Error(t, err)
}

func TestRender_HTML(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "==(.+?)==", "hl")
	doc := writeFile(t, "notes.md", "Some ==marked== text\n")

	out := mustRun(t, "render", "--format", "html", doc)
	assert.Contains(t, out, `<span class="hl" data-contents="==marked==" data-processed="true">==marked==</span>`)
}

func TestRender_Text(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "--hide", "{{open:%%}}(.+?){{close:%%}}", "aside")
	doc := writeFile(t, "notes.md", "# Title\n\nan %%x%% word\n")

	out := mustRun(t, "render", "--format", "text", doc)
	assert.Equal(t, "Title\n\nan x word\n", out)
}

func TestRender_ModeGate(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "--no-source", "==(.+?)==", "hl")
	doc := writeFile(t, "notes.md", "==a==\n")

	out := mustRun(t, "render", "--format", "html", "--mode", "source", doc)
	assert.NotContains(t, out, `class="hl"`)
}

func TestRender_MissingFile(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "render", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "TODO", "todo")
	doc := writeFile(t, "notes.md", "a TODO b\n")

	out := mustRun(t, "scan", doc)
	assert.Contains(t, out, "2-6")
	assert.Contains(t, out, "replace")
	assert.Contains(t, out, "todo")

	out = mustRun(t, "scan", "--cursor", "4", doc)
	assert.Contains(t, out, "mark")

	out = mustRun(t, "scan", "--json", doc)
	assert.Contains(t, out, `"decorations": [`)
	assert.Contains(t, out, `"kind": "replace"`)
	assert.Contains(t, out, `"rule": 0`)
}

func TestScan_Mode(t *testing.T) {
	isolate(t)
	mustRun(t, "rules", "add", "--no-live", "TODO", "todo")
	doc := writeFile(t, "notes.md", "a TODO b\n")

	assert.Equal(t, MsgNoDecorations+"\n", mustRun(t, "scan", doc))
	assert.Contains(t, mustRun(t, "--mode", "source", "scan", doc), "todo")
}

func TestScan_NoDecorations(t *testing.T) {
	isolate(t)
	doc := writeFile(t, "notes.md", "plain\n")
	out := mustRun(t, "scan", doc)
	assert.Equal(t, MsgNoDecorations+"\n", out)
}

func TestConfig_ShowAndInit(t *testing.T) {
	dir := isolate(t)

	out := mustRun(t, "--width", "72", "config", "show")
	assert.Contains(t, out, "property_name = 'regex_mark'")
	assert.Contains(t, out, "width = 72")

	out = mustRun(t, "config", "init")
	target := filepath.Join(dir, paths.ConfigFileName)
	assert.Contains(t, out, target)
	assert.FileExists(t, target)

	_, _, err := run(t, "config", "init")
	assert.Error(t, err)
}

func TestConfig_BadMode(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "--mode", "upside-down", "rules", "list")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	isolate(t)
	out := mustRun(t, "version")
	assert.Contains(t, out, "regexmark version")
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out := mustRun(t, "completion", "bash")
	assert.Contains(t, out, "regexmark")
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	out := mustRun(t, "help", "topics")
	assert.Contains(t, out, "patterns")
	assert.Contains(t, out, "autorules")

	out = mustRun(t, "help", "patterns")
	assert.Contains(t, out, "Delimiter patterns")

	out = mustRun(t, "help", "pattern", "set")
	assert.Contains(t, out, MsgPatternSetShort)
}
