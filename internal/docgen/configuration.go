package docgen

import "strings"

const (
	configurationOutputDirectoryKeyConstant = "output_directory"
	defaultOutputDirectoryConstant          = "docs/cli"
)

// CommandConfiguration captures persisted configuration for the docs command.
type CommandConfiguration struct {
	OutputDirectory string `mapstructure:"output_directory"`
}

// DefaultCommandConfiguration returns baseline configuration values for the docs command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{OutputDirectory: defaultOutputDirectoryConstant}
}

// DefaultConfigurationValues produces Viper defaults for the docs command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationOutputDirectoryKeyConstant: defaults.OutputDirectory,
	}
}

// Sanitize trims configured values and restores the default output directory
// when the configured one is blank.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	if len(sanitized.OutputDirectory) == 0 {
		sanitized.OutputDirectory = defaultOutputDirectoryConstant
	}
	return sanitized
}
