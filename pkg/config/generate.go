package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/regexmark/pkg/errors"
)

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// WriteTemplate writes the commented template to path unless a file is
// already there.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput, "%s already exists", path).WithDetail("path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(GenerateConfigContent()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", path)
	}
	return nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [render]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
