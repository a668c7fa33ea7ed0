package refresh

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	flagutils "github.com/temirov/helpsync/internal/utils/flags"
	pathutils "github.com/temirov/helpsync/internal/utils/path"
)

const (
	commandUseConstant                    = "readme-refresh"
	commandShortDescriptionConstant       = "Refresh the generated help section of a document"
	commandLongDescriptionConstant        = "readme-refresh rewrites the target document below its marker line, replacing the generated section with one fenced block of captured output per configured command."
	targetFlagNameConstant                = "target"
	targetFlagDescriptionConstant         = "Path of the document to rewrite"
	markerFlagNameConstant                = "marker"
	markerFlagDescriptionConstant         = "Marker line that opens the generated section"
	manifestFlagNameConstant              = "manifest"
	manifestFlagDescriptionConstant       = "Path of a helpsync manifest overriding the configuration"
	requireMarkerFlagNameConstant         = "require-marker"
	requireMarkerFlagDescriptionConstant  = "Fail when the marker is missing instead of appending a new section"
	atomicFlagNameConstant                = "atomic"
	atomicFlagDescriptionConstant         = "Write through a temporary file and rename it over the target"
	missingCommandsMessageConstant        = "no commands configured; define tools.readme_refresh.commands or supply a manifest"
	refreshSuccessMessageTemplateConstant = "REFRESHED: %s (%d commands)\n"
)

var readmeRefreshTargetPathResolver = pathutils.NewTargetPathResolver()

// LoggerProvider supplies the logger the command reports progress through.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the readme-refresh command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	FileSystem                   FileSystem
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the readme-refresh command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(targetFlagNameConstant, "", targetFlagDescriptionConstant)
	command.Flags().String(markerFlagNameConstant, "", markerFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescriptionConstant)

	var requireMarkerValue bool
	var atomicWriteValue bool
	flagutils.AddToggleFlag(command.Flags(), &requireMarkerValue, requireMarkerFlagNameConstant, "", false, requireMarkerFlagDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), &atomicWriteValue, atomicFlagNameConstant, "", false, atomicFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	manifestPath, manifestFlagError := command.Flags().GetString(manifestFlagNameConstant)
	if manifestFlagError != nil {
		return manifestFlagError
	}
	trimmedManifestPath := strings.TrimSpace(manifestPath)
	if len(trimmedManifestPath) == 0 {
		if _, statError := os.Stat(DefaultManifestFileNameConstant); statError == nil {
			trimmedManifestPath = DefaultManifestFileNameConstant
		}
	}
	if len(trimmedManifestPath) > 0 {
		manifest, manifestError := LoadManifest(trimmedManifestPath)
		if manifestError != nil {
			return manifestError
		}
		configuration = manifest.ApplyTo(configuration)
	}

	if command.Flags().Changed(targetFlagNameConstant) {
		targetFlagValue, targetFlagError := command.Flags().GetString(targetFlagNameConstant)
		if targetFlagError != nil {
			return targetFlagError
		}
		configuration.Target = targetFlagValue
	}
	if command.Flags().Changed(markerFlagNameConstant) {
		markerFlagValue, markerFlagError := command.Flags().GetString(markerFlagNameConstant)
		if markerFlagError != nil {
			return markerFlagError
		}
		configuration.Marker = markerFlagValue
	}
	if command.Flags().Changed(requireMarkerFlagNameConstant) {
		requireMarkerFlagValue, requireMarkerFlagError := command.Flags().GetBool(requireMarkerFlagNameConstant)
		if requireMarkerFlagError != nil {
			return requireMarkerFlagError
		}
		configuration.RequireMarker = requireMarkerFlagValue
	}
	if command.Flags().Changed(atomicFlagNameConstant) {
		atomicFlagValue, atomicFlagError := command.Flags().GetBool(atomicFlagNameConstant)
		if atomicFlagError != nil {
			return atomicFlagError
		}
		configuration.AtomicWrite = atomicFlagValue
	}

	configuration = configuration.Sanitize()
	toolCommands := configuration.ToolCommands()
	if len(toolCommands) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingCommandsMessageConstant)
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	commandExecutor, executorError := ResolveCommandExecutor(builder.Executor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	fileSystem := ResolveFileSystem(builder.FileSystem)

	service, serviceCreationError := NewService(Dependencies{FileSystem: fileSystem, Executor: commandExecutor})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	refreshResult, refreshError := service.Refresh(command.Context(), Options{
		TargetPath:       readmeRefreshTargetPathResolver.Resolve("", configuration.Target),
		Marker:           configuration.Marker,
		Commands:         toolCommands,
		WorkingDirectory: readmeRefreshTargetPathResolver.Resolve("", configuration.WorkingDirectory),
		RequireMarker:    configuration.RequireMarker,
		AtomicWrite:      configuration.AtomicWrite,
	})
	if refreshError != nil {
		return refreshError
	}

	fmt.Fprintf(command.OutOrStdout(), refreshSuccessMessageTemplateConstant, refreshResult.TargetPath, refreshResult.CommandCount)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
