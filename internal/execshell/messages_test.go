package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	messageCargoWorkspaceConstant = "/workspace/wavrw"
	messageToolWorkspaceConstant  = "/workspace/helpsync"
)

func commandFixture(commandName CommandName, workingDirectory string, arguments ...string) ShellCommand {
	return ShellCommand{
		Name: commandName,
		Details: CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: workingDirectory,
		},
	}
}

func TestCommandMessageFormatterDescribesStartingCommands(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name:            "cargo_run_with_delegated_arguments",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "run", "--quiet", "--", "topic", "chunks"),
			expectedMessage: "Running cargo project with topic chunks in /workspace/wavrw",
		},
		{
			name:            "cargo_run_without_delegated_arguments",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "run", "--quiet"),
			expectedMessage: "Running cargo project in /workspace/wavrw",
		},
		{
			name:            "cargo_build",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "build", "--release"),
			expectedMessage: "Building cargo project in /workspace/wavrw",
		},
		{
			name:            "cargo_subcommand_without_template",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "test"),
			expectedMessage: "Running cargo test (in /workspace/wavrw)",
		},
		{
			name:            "go_run_with_program_arguments",
			command:         commandFixture(CommandGo, messageToolWorkspaceConstant, "run", "./cmd/helpsync", "--help"),
			expectedMessage: "Running Go program ./cmd/helpsync with --help in /workspace/helpsync",
		},
		{
			name:            "go_run_without_program_uses_fallback_labels",
			command:         commandFixture(CommandGo, "", "run"),
			expectedMessage: "Running Go program main package in current directory",
		},
		{
			name:            "go_build_with_package_patterns",
			command:         commandFixture(CommandGo, messageToolWorkspaceConstant, "build", "./..."),
			expectedMessage: "Building Go packages ./... in /workspace/helpsync",
		},
		{
			name:            "make_default_target",
			command:         commandFixture(CommandMake, messageCargoWorkspaceConstant, "-s"),
			expectedMessage: "Running default make target in /workspace/wavrw",
		},
		{
			name:            "unrecognized_tool",
			command:         commandFixture(CommandName("python3"), messageCargoWorkspaceConstant, "--version"),
			expectedMessage: "Running python3 --version (in /workspace/wavrw)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterDescribesCompletedCommands(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name:            "cargo_run_with_delegated_arguments",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "run", "--quiet", "--", "topic", "chunks"),
			expectedMessage: "Captured cargo project output for topic chunks in /workspace/wavrw",
		},
		{
			name:            "go_run",
			command:         commandFixture(CommandGo, messageToolWorkspaceConstant, "run", "./cmd/helpsync", "--help"),
			expectedMessage: "Captured Go program output from ./cmd/helpsync in /workspace/helpsync",
		},
		{
			name:            "make_target",
			command:         commandFixture(CommandMake, messageCargoWorkspaceConstant, "docs"),
			expectedMessage: "Completed make target docs in /workspace/wavrw",
		},
		{
			name:            "unrecognized_tool",
			command:         commandFixture(CommandName("python3"), messageCargoWorkspaceConstant, "--version"),
			expectedMessage: "Completed python3 --version (in /workspace/wavrw)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildSuccessMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterDescribesNonZeroExits(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		expectedMessage string
	}{
		{
			name:            "make_target_with_standard_error",
			command:         commandFixture(CommandMake, messageCargoWorkspaceConstant, "docs"),
			result:          ExecutionResult{ExitCode: 2, StandardError: "no rule to make target"},
			expectedMessage: "Failed to run make target docs in /workspace/wavrw (exit code 2: no rule to make target)",
		},
		{
			name:            "cargo_run_without_standard_error",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "run", "--quiet", "--", "topic", "chunks"),
			result:          ExecutionResult{ExitCode: 101},
			expectedMessage: "Failed to run cargo project with topic chunks in /workspace/wavrw (exit code 101)",
		},
		{
			name:            "go_build_without_package_patterns",
			command:         commandFixture(CommandGo, messageToolWorkspaceConstant, "build"),
			result:          ExecutionResult{ExitCode: 1, StandardError: "build constraints exclude all Go files"},
			expectedMessage: "Failed to build Go packages in /workspace/helpsync (exit code 1: build constraints exclude all Go files)",
		},
		{
			name:            "blank_standard_error_omitted",
			command:         commandFixture(CommandName("python3"), messageCargoWorkspaceConstant, "--version"),
			result:          ExecutionResult{ExitCode: 127, StandardError: "  \n"},
			expectedMessage: "python3 --version (in /workspace/wavrw) failed with exit code 127",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildFailureMessage(testCase.command, testCase.result))
		})
	}
}

func TestCommandMessageFormatterDescribesLaunchFailures(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		failure         error
		expectedMessage string
	}{
		{
			name:            "cargo_run_with_cause",
			command:         commandFixture(CommandCargo, messageCargoWorkspaceConstant, "run", "--quiet", "--", "topic", "chunks"),
			failure:         errors.New("executable file not found in $PATH"),
			expectedMessage: "Unable to run cargo project with topic chunks in /workspace/wavrw: executable file not found in $PATH",
		},
		{
			name:            "go_run_with_cause",
			command:         commandFixture(CommandGo, messageToolWorkspaceConstant, "run", "./cmd/helpsync"),
			failure:         errors.New("permission denied"),
			expectedMessage: "Unable to run Go program ./cmd/helpsync in /workspace/helpsync: permission denied",
		},
		{
			name:            "make_default_target_without_cause",
			command:         commandFixture(CommandMake, messageCargoWorkspaceConstant),
			failure:         nil,
			expectedMessage: "Unable to run default make target in /workspace/wavrw: unknown error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildExecutionFailureMessage(testCase.command, testCase.failure))
		})
	}
}
