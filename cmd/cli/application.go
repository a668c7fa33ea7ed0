package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/helpsync/internal/docgen"
	"github.com/temirov/helpsync/internal/refresh"
	"github.com/temirov/helpsync/internal/utils"
	flagutils "github.com/temirov/helpsync/internal/utils/flags"
)

const (
	applicationNameConstant                        = "helpsync"
	applicationShortDescriptionConstant            = "Keep generated help sections of documentation in sync"
	applicationLongDescriptionConstant             = "helpsync rewrites the generated section of project documentation by running the documented commands and capturing their output."
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagUsageConstant                      = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagUsageConstant                     = "Override the configured log format."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                      = "HELPSYNC"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationSearchPathEnvironmentNameConstant = "HELPSYNC_CONFIG_SEARCH_PATH"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	environmentLoadErrorTemplateConstant           = "unable to load environment file: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	rootCommandInfoMessageConstant                 = "helpsync CLI executed"
	rootCommandDebugMessageConstant                = "helpsync CLI diagnostics"
	logFieldCommandNameConstant                    = "command_name"
	logFieldArgumentCountConstant                  = "argument_count"
	logFieldArgumentsConstant                      = "arguments"
	loggerNotInitializedMessageConstant            = "logger not initialized"
	defaultConfigurationSearchPathConstant         = "."
	toolsConfigurationKeyConstant                  = "tools"
	readmeRefreshConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".readme_refresh"
	docsConfigurationKeyConstant                   = toolsConfigurationKeyConstant + ".docs"
	versionFlagTokenConstant                       = "--version"
	versionOutputTemplateConstant                  = "helpsync version: %s\n"
	developmentVersionConstant                     = "development"
	develModuleVersionConstant                     = "(devel)"
	initializeFlagNameConstant                     = "init"
	initializeFlagUsageConstant                    = "Write the embedded default configuration to a config file (local or user scope)."
	forceFlagNameConstant                          = "force"
	forceFlagUsageConstant                         = "Overwrite the existing configuration file during --init."
	initializeScopeLocalConstant                   = "local"
	initializeScopeUserConstant                    = "user"
	userConfigurationDirectoryNameConstant         = ".helpsync"
	configurationFileNameConstant                  = "config.yaml"
	initializedOutputTemplateConstant              = "INITIALIZED: %s\n"
	configurationExistsErrorTemplateConstant       = "configuration file %s already exists (use --force to overwrite)"
	unsupportedScopeErrorTemplateConstant          = "unsupported configuration scope %q"
	configurationWriteErrorTemplateConstant        = "unable to write configuration file: %w"
)

// ApplicationConfiguration mirrors the layout of the configuration file the
// CLI consumes.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration carries the logging settings every command shares.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration groups the per-tool configuration blocks.
type ApplicationToolsConfiguration struct {
	ReadmeRefresh refresh.CommandConfiguration `mapstructure:"readme_refresh"`
	Docs          docgen.CommandConfiguration  `mapstructure:"docs"`
}

// Application owns the root Cobra command together with the configuration and
// logging state resolved for each invocation.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	environmentLoader      utils.EnvironmentFileLoader
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	initializeFlagValue    string
	forceFlagValue         bool
	commandContextAccessor utils.CommandContextAccessor
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication constructs the CLI with its configuration loader, logger
// plumbing, and subcommands attached.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		environmentLoader:      utils.NewEnvironmentFileLoader(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
	}
	application.rootCommand = application.buildRootCommand()

	return application
}

func (application *Application) buildRootCommand() *cobra.Command {
	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}
	cobraCommand.SetContext(context.Background())
	cobraCommand.CompletionOptions.DisableDefaultCmd = true

	application.registerRootFlags(cobraCommand)
	application.attachToolCommands(cobraCommand)

	return cobraCommand
}

func (application *Application) registerRootFlags(cobraCommand *cobra.Command) {
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(
		string(utils.LogFormatStructured),
		[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		logFormatFlagUsageConstant,
	))

	localFlags := cobraCommand.Flags()
	localFlags.StringVar(&application.initializeFlagValue, initializeFlagNameConstant, "", initializeFlagUsageConstant)
	if initializeFlag := localFlags.Lookup(initializeFlagNameConstant); initializeFlag != nil {
		initializeFlag.NoOptDefVal = initializeScopeLocalConstant
	}
	localFlags.BoolVar(&application.forceFlagValue, forceFlagNameConstant, false, forceFlagUsageConstant)
}

func (application *Application) attachToolCommands(cobraCommand *cobra.Command) {
	readmeRefreshBuilder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return application.configuration.Tools.ReadmeRefresh
		},
	}
	if readmeRefreshCommand, buildError := readmeRefreshBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(readmeRefreshCommand)
	}

	docsBuilder := docgen.DocsCommandBuilder{
		RootCommandProvider: func() *cobra.Command {
			return application.rootCommand
		},
		ConfigurationProvider: func() docgen.CommandConfiguration {
			return application.configuration.Tools.Docs
		},
	}
	if docsCommand, buildError := docsBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(docsCommand)
	}

	completionBuilder := docgen.CompletionCommandBuilder{
		RootCommandProvider: func() *cobra.Command {
			return application.rootCommand
		},
	}
	if completionCommand, buildError := completionBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(completionCommand)
	}
}

// Execute parses the process arguments and runs the matched command, flushing
// buffered log output before returning. The --version token short-circuits
// command dispatch entirely.
func (application *Application) Execute() error {
	normalizedArguments := flagutils.NormalizeToggleArguments(os.Args[1:])
	if containsVersionToken(normalizedArguments) {
		application.printVersion()
		return nil
	}

	application.rootCommand.SetArgs(normalizedArguments)
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute runs a freshly assembled application against the process arguments.
func Execute() error {
	return NewApplication().Execute()
}

// InitializeForCommand loads configuration as if the named subcommand were
// about to run, leaving the resolved configuration on the application.
func (application *Application) InitializeForCommand(commandUse string) error {
	targetCommand := application.rootCommand
	for _, childCommand := range application.rootCommand.Commands() {
		if childCommand.Name() == strings.TrimSpace(commandUse) {
			targetCommand = childCommand
			break
		}
	}
	return application.initializeConfiguration(targetCommand)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	if environmentLoadError := application.environmentLoader.LoadDefault(); environmentLoadError != nil {
		return fmt.Errorf(environmentLoadErrorTemplateConstant, environmentLoadError)
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(
		application.configurationFilePath,
		defaultConfigurationValues(),
		&application.configuration,
	)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration
	application.applyPersistentFlagOverrides(command)

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	application.attachConfigurationContext(command)
	return nil
}

// defaultConfigurationValues merges the baseline logging defaults with the
// defaults each tool package publishes for its configuration section.
func defaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range refresh.DefaultConfigurationValues(readmeRefreshConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range docgen.DefaultConfigurationValues(docsConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}

func (application *Application) applyPersistentFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
}

func (application *Application) attachConfigurationContext(command *cobra.Command) {
	if command == nil {
		return
	}

	updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
		command.Context(),
		application.configurationMetadata.ConfigFileUsed,
	)
	command.SetContext(updatedContext)
	if rootCommand := command.Root(); rootCommand != nil {
		rootCommand.SetContext(updatedContext)
	}
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogFormat), string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)
	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if command.Flags().Changed(initializeFlagNameConstant) {
		return application.initializeConfigurationFile(command)
	}

	if len(arguments) == 0 {
		return command.Help()
	}
	return nil
}

func (application *Application) initializeConfigurationFile(command *cobra.Command) error {
	configurationScope := strings.TrimSpace(strings.ToLower(application.initializeFlagValue))
	if len(configurationScope) == 0 {
		configurationScope = initializeScopeLocalConstant
	}

	var configurationDirectory string
	switch configurationScope {
	case initializeScopeLocalConstant:
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(configurationWriteErrorTemplateConstant, workingDirectoryError)
		}
		configurationDirectory = workingDirectory
	case initializeScopeUserConstant:
		homeDirectory, homeDirectoryError := os.UserHomeDir()
		if homeDirectoryError != nil {
			return fmt.Errorf(configurationWriteErrorTemplateConstant, homeDirectoryError)
		}
		configurationDirectory = filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant)
	default:
		return fmt.Errorf(unsupportedScopeErrorTemplateConstant, configurationScope)
	}

	configurationPath := filepath.Join(configurationDirectory, configurationFileNameConstant)
	if _, statError := os.Stat(configurationPath); statError == nil && !application.forceFlagValue {
		return fmt.Errorf(configurationExistsErrorTemplateConstant, configurationPath)
	}

	if directoryCreationError := os.MkdirAll(configurationDirectory, 0o755); directoryCreationError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, directoryCreationError)
	}

	embeddedConfigurationData, _ := EmbeddedDefaultConfiguration()
	if writeError := os.WriteFile(configurationPath, embeddedConfigurationData, 0o644); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, writeError)
	}

	fmt.Fprintf(command.OutOrStdout(), initializedOutputTemplateConstant, configurationPath)
	return nil
}

func (application *Application) printVersion() {
	resolvedVersion := developmentVersionConstant
	if application.versionResolver != nil {
		resolvedVersion = application.versionResolver(application.rootCommand.Context())
	}

	fmt.Fprintf(os.Stdout, versionOutputTemplateConstant, resolvedVersion)

	if application.exitFunction != nil {
		application.exitFunction(0)
	}
}

// flushLogger syncs buffered log output. Sync failures on descriptors that do
// not support syncing, stderr on most platforms included, are ignored.
func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	if syncError == nil || errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return nil
	}
	return syncError
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	if command.PersistentFlags().Changed(flagName) || command.InheritedFlags().Changed(flagName) {
		return true
	}

	rootCommand := command.Root()
	return rootCommand != nil && rootCommand.PersistentFlags().Changed(flagName)
}

func configurationSearchPaths() []string {
	configuredSearchPath := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentNameConstant))
	if len(configuredSearchPath) > 0 {
		return []string{configuredSearchPath}
	}
	return []string{defaultConfigurationSearchPathConstant}
}

func containsVersionToken(arguments []string) bool {
	for _, argument := range arguments {
		if argument == versionFlagTokenConstant {
			return true
		}
	}
	return false
}

func resolveBuildVersion(context.Context) string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if !buildInformationAvailable {
		return developmentVersionConstant
	}

	moduleVersion := strings.TrimSpace(buildInformation.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == develModuleVersionConstant {
		return developmentVersionConstant
	}
	return moduleVersion
}
