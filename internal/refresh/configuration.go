package refresh

import "strings"

const (
	configurationTargetKeyConstant           = "target"
	configurationMarkerKeyConstant           = "marker"
	configurationWorkingDirectoryKeyConstant = "working_directory"
	configurationLauncherKeyConstant         = "launcher"
	configurationDisplayNameKeyConstant      = "display_name"
	configurationCommandsKeyConstant         = "commands"
	configurationRequireMarkerKeyConstant    = "require_marker"
	configurationAtomicWriteKeyConstant      = "atomic_write"
	defaultTargetConstant                    = "README.md"
	defaultMarkerConstant                    = "## Help overview"
)

// CommandConfiguration captures persisted configuration for the readme-refresh command.
type CommandConfiguration struct {
	Target           string     `mapstructure:"target"`
	Marker           string     `mapstructure:"marker"`
	WorkingDirectory string     `mapstructure:"working_directory"`
	Launcher         []string   `mapstructure:"launcher"`
	DisplayName      string     `mapstructure:"display_name"`
	Commands         [][]string `mapstructure:"commands"`
	RequireMarker    bool       `mapstructure:"require_marker"`
	AtomicWrite      bool       `mapstructure:"atomic_write"`
}

// DefaultCommandConfiguration returns baseline configuration values for the readme-refresh command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Target: defaultTargetConstant,
		Marker: defaultMarkerConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the readme-refresh command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationTargetKeyConstant:           defaults.Target,
		rootKey + "." + configurationMarkerKeyConstant:           defaults.Marker,
		rootKey + "." + configurationWorkingDirectoryKeyConstant: defaults.WorkingDirectory,
		rootKey + "." + configurationLauncherKeyConstant:         defaults.Launcher,
		rootKey + "." + configurationDisplayNameKeyConstant:      defaults.DisplayName,
		rootKey + "." + configurationCommandsKeyConstant:         defaults.Commands,
		rootKey + "." + configurationRequireMarkerKeyConstant:    defaults.RequireMarker,
		rootKey + "." + configurationAtomicWriteKeyConstant:      defaults.AtomicWrite,
	}
}

// Sanitize trims configured values, restores the marker's trailing newline,
// and drops empty command vectors.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Target = strings.TrimSpace(configuration.Target)
	sanitized.Marker = sanitizeMarker(configuration.Marker)
	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	sanitized.Launcher = sanitizeArgumentTokens(configuration.Launcher)
	sanitized.DisplayName = strings.TrimSpace(configuration.DisplayName)
	sanitized.Commands = sanitizeCommandVectors(configuration.Commands)
	return sanitized
}

// ToolCommands materializes the effective command list: every configured
// vector is executed behind the launcher tokens while the echoed form keeps
// the display name and the user-relevant arguments. Without a launcher the
// vector's first token is the executable, so the echo renders it through the
// display name rather than repeating it.
func (configuration CommandConfiguration) ToolCommands() []ToolCommand {
	sanitized := configuration.Sanitize()
	if len(sanitized.Commands) == 0 {
		return nil
	}

	toolCommands := make([]ToolCommand, 0, len(sanitized.Commands))
	for _, commandArguments := range sanitized.Commands {
		executedArguments := make([]string, 0, len(sanitized.Launcher)+len(commandArguments))
		executedArguments = append(executedArguments, sanitized.Launcher...)
		executedArguments = append(executedArguments, commandArguments...)

		displayArguments := commandArguments
		if len(sanitized.Launcher) == 0 && len(commandArguments) > 0 {
			displayArguments = commandArguments[1:]
		}
		toolCommands = append(toolCommands, ToolCommand{
			Arguments:        executedArguments,
			DisplayName:      sanitized.DisplayName,
			DisplayArguments: displayArguments,
		})
	}
	return toolCommands
}

func sanitizeMarker(marker string) string {
	trimmedMarker := strings.TrimSpace(marker)
	if len(trimmedMarker) == 0 {
		return ""
	}
	return trimmedMarker + lineTerminatorConstant
}

func sanitizeArgumentTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	sanitizedTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		trimmedToken := strings.TrimSpace(token)
		if len(trimmedToken) == 0 {
			continue
		}
		sanitizedTokens = append(sanitizedTokens, trimmedToken)
	}
	if len(sanitizedTokens) == 0 {
		return nil
	}
	return sanitizedTokens
}

func sanitizeCommandVectors(vectors [][]string) [][]string {
	if len(vectors) == 0 {
		return nil
	}

	sanitizedVectors := make([][]string, 0, len(vectors))
	for _, vector := range vectors {
		sanitizedVector := sanitizeArgumentTokens(vector)
		if len(sanitizedVector) == 0 {
			continue
		}
		sanitizedVectors = append(sanitizedVectors, sanitizedVector)
	}
	if len(sanitizedVectors) == 0 {
		return nil
	}
	return sanitizedVectors
}
