package regexmark

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Decorate markdown with regex rules"
	MsgRenderShort      = "Render a markdown file with decorations"
	MsgScanShort        = "List the editor decorations of a file"
	MsgRulesShort       = "Manage the rule list"
	MsgRulesListShort   = "List rules with their index and status"
	MsgRulesShowShort   = "Show one rule in detail"
	MsgRulesAddShort    = "Append a rule"
	MsgRulesRemoveShort = "Remove a rule by index"
	MsgRulesMoveShort   = "Move a rule up or down"
	MsgRulesCheckShort  = "Validate every rule"
	MsgRulesDupShort    = "List rules with identical expressions"
	MsgPatternShort     = "Show or change the delimiter syntax"
	MsgPatternShowShort = "Show the delimiter syntax"
	MsgPatternSetShort  = "Replace the delimiter syntax and migrate rules"
	MsgImportShort      = "Merge a rule bundle into the settings"
	MsgExportShort      = "Write the settings as JSON or YAML"
	MsgConfigShort      = "Inspect the configuration"
	MsgConfigShowShort  = "Print the effective configuration"
	MsgConfigInitShort  = "Write a commented configuration template"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate man pages"

	// Status messages
	MsgRuleAdded        = "Added rule %d: %s\n"
	MsgRuleRemoved      = "Removed rule %d: %s\n"
	MsgRuleMoved        = "Moved rule %d to %d\n"
	MsgRuleNotMoved     = "Rule %d is already at the edge\n"
	MsgNoRules          = "No rules defined."
	MsgRulesValid       = "All %d rules are valid.\n"
	MsgNoDuplicates     = "No duplicate rules."
	MsgDuplicateItem    = "  %d: %s\n"
	MsgPatternChanged   = "Pattern changed to %s ... %s\n"
	MsgPatternDisabled  = "Disabled %d rule(s) that no longer validate:\n"
	MsgImported         = "Imported %d rule(s).\n"
	MsgConfigWritten    = "Wrote configuration template to %s\n"
	MsgNoDecorations    = "No decorations."
	MsgRuleAddedInvalid = "Rule %d has errors and will not run until fixed:\n"

	// Error messages
	MsgErrIndex      = "no rule at index %d (have %d)"
	MsgErrDirection  = "direction must be up or down, got %q"
	MsgErrRulesCheck = "%d rule(s) have errors"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/regexmark/config.toml)"
	MsgFlagSettings = "Settings file holding the rules"
	MsgFlagFormat   = "Output format: auto, term, text or html"
	MsgFlagMode     = "View mode: reading, source or live"
	MsgFlagStyles   = "YAML file with extra class styles"
	MsgFlagWidth    = "Wrap terminal output at this width"
	MsgFlagHide     = "Hide the delimiters marked by placeholders"
	MsgFlagFlags    = "Regex flags, any of gimsuy"
	MsgFlagNoRead   = "Do not run in reading view"
	MsgFlagNoSource = "Do not run in source view"
	MsgFlagNoLive   = "Do not run in live view"
	MsgFlagNoCode   = "Do not run inside code"
	MsgFlagOutput   = "Write to this file instead of stdout"
	MsgFlagExportAs = "Export format: json or yaml"
	MsgFlagCursor   = "Byte offset of a cursor"
	MsgFlagSanitize = "Sanitize the rendered HTML before decorating"
	MsgFlagManDir   = "Directory to write man pages to"
	MsgFlagJSON     = "Print decorations as JSON"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/rules-add-example.txt
	msgRulesAddExampleRaw string
	MsgRulesAddExample    = strings.TrimRight(msgRulesAddExampleRaw, "\n")

	//go:embed msgs/pattern-long.txt
	msgPatternLongRaw string
	MsgPatternLong    = strings.TrimSpace(msgPatternLongRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
