package docgen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const (
	docsCommandUseConstant                 = "docs"
	docsCommandShortDescriptionConstant    = "Generate Markdown reference documentation for the CLI"
	docsCommandLongDescriptionConstant     = "docs writes one Markdown page per command into the output directory, creating the directory when it does not exist."
	outputDirectoryFlagNameConstant        = "dir"
	outputDirectoryFlagDescriptionConstant = "Directory receiving the generated Markdown pages"
	docsSuccessMessageTemplateConstant     = "GENERATED: %s\n"
	rootCommandMissingMessageConstant      = "root command not configured"
	outputDirectoryPermissionsConstant     = 0o755
)

// ErrRootCommandNotConfigured indicates a builder was constructed without the root command it renders.
var ErrRootCommandNotConfigured = errors.New(rootCommandMissingMessageConstant)

// DocsCommandBuilder assembles the docs command.
type DocsCommandBuilder struct {
	RootCommandProvider   func() *cobra.Command
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the docs command.
func (builder *DocsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   docsCommandUseConstant,
		Short: docsCommandShortDescriptionConstant,
		Long:  docsCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(outputDirectoryFlagNameConstant, "", outputDirectoryFlagDescriptionConstant)

	return command, nil
}

func (builder *DocsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	rootCommand := builder.resolveRootCommand()
	if rootCommand == nil {
		return ErrRootCommandNotConfigured
	}

	configuration := builder.resolveConfiguration()
	outputDirectory := configuration.OutputDirectory
	if command.Flags().Changed(outputDirectoryFlagNameConstant) {
		directoryFlagValue, directoryFlagError := command.Flags().GetString(outputDirectoryFlagNameConstant)
		if directoryFlagError != nil {
			return directoryFlagError
		}
		outputDirectory = directoryFlagValue
	}
	outputDirectory = strings.TrimSpace(outputDirectory)
	if len(outputDirectory) == 0 {
		outputDirectory = defaultOutputDirectoryConstant
	}

	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return directoryError
	}

	// GenMarkdownTree stamps every page with a generation timestamp unless the tag is disabled.
	rootCommand.DisableAutoGenTag = true
	if generationError := cobradoc.GenMarkdownTree(rootCommand, outputDirectory); generationError != nil {
		return generationError
	}

	fmt.Fprintf(command.OutOrStdout(), docsSuccessMessageTemplateConstant, outputDirectory)
	return nil
}

func (builder *DocsCommandBuilder) resolveRootCommand() *cobra.Command {
	if builder.RootCommandProvider == nil {
		return nil
	}
	return builder.RootCommandProvider()
}

func (builder *DocsCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
