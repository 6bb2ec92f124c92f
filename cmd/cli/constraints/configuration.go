package constraints

import (
	"strings"
)

const (
	masterChangelogConfigKeySuffixConstant = ".master_changelog"
	authorConfigKeySuffixConstant          = ".author"
	defaultMasterChangelogNameConstant     = "db.changelog-master.xml"
)

// CommandConfiguration captures persisted configuration for the constraint commands.
type CommandConfiguration struct {
	MasterChangelogPath string `mapstructure:"master_changelog"`
	Author              string `mapstructure:"author"`
}

// DefaultCommandConfiguration returns baseline configuration values for the constraint commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		MasterChangelogPath: defaultMasterChangelogNameConstant,
		Author:              "",
	}
}

// Sanitize trims configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.MasterChangelogPath = strings.TrimSpace(configuration.MasterChangelogPath)
	sanitized.Author = strings.TrimSpace(configuration.Author)
	return sanitized
}

// DefaultConfigurationValues exposes the command defaults keyed under the provided configuration prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + masterChangelogConfigKeySuffixConstant: defaults.MasterChangelogPath,
		configurationKeyPrefix + authorConfigKeySuffixConstant:          defaults.Author,
	}
}
