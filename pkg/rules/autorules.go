package rules

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/regexmark/pkg/document"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/regex"
	"github.com/dlclark/regexp2"
)

// Admits evaluates the auto-rules against doc. Without a document path or
// without auto-rules the rule is admitted. Otherwise the first deciding
// auto-rule wins, and no decision means the rule is not admitted.
func (v ViewMode) Admits(doc *document.Info, propertyName string) bool {
	if doc == nil || doc.Path == "" || len(v.AutoRules) == 0 {
		return true
	}
	logger := logging.GetLogger("rules.autorules")
	for _, ar := range v.AutoRules {
		re, err := regex.Compile(ar.Value, "")
		if err != nil {
			logger.Warn().Err(err).Str("value", ar.Value).Msg("Skipping auto-rule with invalid regex")
			continue
		}

		switch ar.Type {
		case AutoRulePath:
			if regex.Test(re, doc.Path) {
				return !ar.Exclude
			}
		case AutoRuleFrontmatter:
			value := doc.Property(propertyName)
			if isMissing(value) && ar.Exclude {
				return true
			}
			if value != nil {
				if admitted, decided := checkValue(value, re, ar); decided {
					return admitted
				}
			}
		}
	}
	return false
}

func isMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if list, ok := value.([]interface{}); ok {
		return len(list) == 0
	}
	return false
}

// checkValue tests scalars against re and searches lists and maps for the
// first scalar that matches.
func checkValue(value interface{}, re *regexp2.Regexp, ar AutoRule) (admitted, decided bool) {
	switch v := value.(type) {
	case string:
		if regex.Test(re, v) {
			return !ar.Exclude, true
		}
	case int, int64, uint64, float64:
		if regex.Test(re, fmt.Sprint(v)) {
			return !ar.Exclude, true
		}
	case []interface{}:
		for _, item := range v {
			if admitted, decided := checkValue(item, re, ar); decided {
				return admitted, true
			}
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if admitted, decided := checkValue(v[k], re, ar); decided {
				return admitted, true
			}
		}
	}
	return false, false
}
