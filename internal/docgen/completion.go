package docgen

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	completionCommandUseConstant              = "completion [bash|zsh|fish|powershell]"
	completionCommandShortDescriptionConstant = "Generate shell completion scripts"
	completionCommandLongDescriptionConstant  = `Generate a completion script for the named shell.

The output is evaluated by the shell. For example:

  helpsync completion bash > /usr/local/etc/bash_completion.d/helpsync
  helpsync completion zsh > "${fpath[1]}/_helpsync"
  helpsync completion fish | source
  helpsync completion powershell | Out-String | Invoke-Expression`
	bashShellNameConstant                   = "bash"
	zshShellNameConstant                    = "zsh"
	fishShellNameConstant                   = "fish"
	powershellShellNameConstant             = "powershell"
	unsupportedShellMessageTemplateConstant = "unsupported shell %q"
)

// CompletionCommandBuilder assembles the completion command.
type CompletionCommandBuilder struct {
	RootCommandProvider func() *cobra.Command
}

// Build constructs the completion command.
func (builder *CompletionCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:       completionCommandUseConstant,
		Short:     completionCommandShortDescriptionConstant,
		Long:      completionCommandLongDescriptionConstant,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{bashShellNameConstant, zshShellNameConstant, fishShellNameConstant, powershellShellNameConstant},
		RunE:      builder.run,
	}
	command.DisableFlagsInUseLine = true

	return command, nil
}

func (builder *CompletionCommandBuilder) run(command *cobra.Command, arguments []string) error {
	rootCommand := builder.resolveRootCommand()
	if rootCommand == nil {
		return ErrRootCommandNotConfigured
	}

	switch arguments[0] {
	case bashShellNameConstant:
		return rootCommand.GenBashCompletion(command.OutOrStdout())
	case zshShellNameConstant:
		return rootCommand.GenZshCompletion(command.OutOrStdout())
	case fishShellNameConstant:
		return rootCommand.GenFishCompletion(command.OutOrStdout(), true)
	case powershellShellNameConstant:
		return rootCommand.GenPowerShellCompletion(command.OutOrStdout())
	default:
		return fmt.Errorf(unsupportedShellMessageTemplateConstant, arguments[0])
	}
}

func (builder *CompletionCommandBuilder) resolveRootCommand() *cobra.Command {
	if builder.RootCommandProvider == nil {
		return nil
	}
	return builder.RootCommandProvider()
}
