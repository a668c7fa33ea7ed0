package refresh_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/helpsync/internal/execshell"
	"github.com/temirov/helpsync/internal/refresh"
)

type recordingToolExecutor struct {
	scriptedOutputs  []string
	invocationErrors []error
	recordedCommands []execshell.ShellCommand
}

func (executor *recordingToolExecutor) Execute(_ context.Context, shellCommand execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, shellCommand)
	if len(executor.invocationErrors) > 0 {
		invocationError := executor.invocationErrors[0]
		executor.invocationErrors = executor.invocationErrors[1:]
		if invocationError != nil {
			return execshell.ExecutionResult{}, invocationError
		}
	}
	var scriptedOutput string
	if len(executor.scriptedOutputs) > 0 {
		scriptedOutput = executor.scriptedOutputs[0]
		executor.scriptedOutputs = executor.scriptedOutputs[1:]
	}
	return execshell.ExecutionResult{StandardOutput: scriptedOutput}, nil
}

func writeCommandDocument(t *testing.T, contents string) string {
	t.Helper()
	documentPath := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(documentPath, []byte(contents), 0o644))
	return documentPath
}

func readCommandDocument(t *testing.T, documentPath string) string {
	t.Helper()
	contents, readError := os.ReadFile(documentPath)
	require.NoError(t, readError)
	return string(contents)
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := refresh.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
}

func TestCommandRequiresCommands(t *testing.T) {
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{}
		},
		Executor: &recordingToolExecutor{},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	runError := command.RunE(command, []string{})
	require.Error(t, runError)
	require.ErrorContains(t, runError, "no commands configured")
}

func TestCommandRunsSuccessfully(t *testing.T) {
	documentPath := writeCommandDocument(t, "# WAV Explorer\n\n## Help overview\nstale\n")
	executor := &recordingToolExecutor{scriptedOutputs: []string{"usage: wavrw\n"}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{
				Target:      documentPath,
				Marker:      "## Help overview",
				DisplayName: "wavrw",
				Commands:    [][]string{{"./target/debug/wavrw", "help"}},
			}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Contains(t, outputBuffer.String(), "REFRESHED")
	require.Contains(t, outputBuffer.String(), documentPath)
	require.Contains(t, outputBuffer.String(), "1 commands")

	require.Len(t, executor.recordedCommands, 1)
	require.Equal(t, execshell.CommandName("./target/debug/wavrw"), executor.recordedCommands[0].Name)
	require.Equal(t, []string{"help"}, executor.recordedCommands[0].Details.Arguments)

	expectedDocument := "# WAV Explorer\n\n## Help overview\n\n```\n$ wavrw help\nusage: wavrw\n```\n"
	require.Equal(t, expectedDocument, readCommandDocument(t, documentPath))
}

func TestCommandMarkerFlagOverridesConfiguration(t *testing.T) {
	documentPath := writeCommandDocument(t, "# WAV Explorer\n\n## CLI\nstale\n")
	executor := &recordingToolExecutor{scriptedOutputs: []string{"usage: wavrw\n"}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{
				Target:      documentPath,
				Marker:      "## Help overview",
				DisplayName: "wavrw",
				Commands:    [][]string{{"wavrw", "help"}},
			}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	require.NoError(t, command.Flags().Set("marker", "## CLI"))

	require.NoError(t, command.RunE(command, []string{}))
	expectedDocument := "# WAV Explorer\n\n## CLI\n\n```\n$ wavrw help\nusage: wavrw\n```\n"
	require.Equal(t, expectedDocument, readCommandDocument(t, documentPath))
}

func TestCommandRequireMarkerFlagFailsWithoutMarker(t *testing.T) {
	originalDocument := "# WAV Explorer\n"
	documentPath := writeCommandDocument(t, originalDocument)
	executor := &recordingToolExecutor{}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{
				Target:   documentPath,
				Marker:   "## Help overview",
				Commands: [][]string{{"wavrw", "help"}},
			}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	require.NoError(t, command.Flags().Set("require-marker", "true"))

	runError := command.RunE(command, []string{})
	require.ErrorIs(t, runError, refresh.ErrMarkerNotFound)
	require.Empty(t, executor.recordedCommands)
	require.Equal(t, originalDocument, readCommandDocument(t, documentPath))
}

func TestCommandLoadsManifestFromFlag(t *testing.T) {
	documentPath := writeCommandDocument(t, "# WAV Explorer\n\n## Help overview\n")
	manifestPath := filepath.Join(t.TempDir(), "helpsync.yaml")
	manifestDocument := fmt.Sprintf("target: %s\nmarker: \"## Help overview\"\ndisplay_name: wavrw\ncommands:\n  - [./bin/wavrw, help]\n", documentPath)
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestDocument), 0o644))

	executor := &recordingToolExecutor{scriptedOutputs: []string{"usage: wavrw\n"}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	require.NoError(t, command.Flags().Set("manifest", manifestPath))

	require.NoError(t, command.RunE(command, []string{}))
	require.Len(t, executor.recordedCommands, 1)
	require.Equal(t, execshell.CommandName("./bin/wavrw"), executor.recordedCommands[0].Name)

	expectedDocument := "# WAV Explorer\n\n## Help overview\n\n```\n$ wavrw help\nusage: wavrw\n```\n"
	require.Equal(t, expectedDocument, readCommandDocument(t, documentPath))
}

func TestCommandFlagOverridesManifest(t *testing.T) {
	documentPath := writeCommandDocument(t, "# WAV Explorer\n")
	manifestPath := filepath.Join(t.TempDir(), "helpsync.yaml")
	manifestDocument := fmt.Sprintf("target: %s\ndisplay_name: wavrw\nrequire_marker: true\ncommands:\n  - [./bin/wavrw, help]\n", documentPath)
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestDocument), 0o644))

	executor := &recordingToolExecutor{scriptedOutputs: []string{"usage: wavrw\n"}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{Marker: "## Help overview"}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	require.NoError(t, command.Flags().Set("manifest", manifestPath))
	require.NoError(t, command.Flags().Set("require-marker", "false"))

	require.NoError(t, command.RunE(command, []string{}))
	expectedDocument := "# WAV Explorer\n## Help overview\n\n```\n$ wavrw help\nusage: wavrw\n```\n"
	require.Equal(t, expectedDocument, readCommandDocument(t, documentPath))
}

func TestCommandDiscoversDefaultManifest(t *testing.T) {
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)

	require.NoError(t, os.WriteFile(filepath.Join(workingDirectory, "README.md"), []byte("# WAV Explorer\n\n## Help overview\n"), 0o644))
	manifestDocument := "display_name: wavrw\ncommands:\n  - [./bin/wavrw, help]\n"
	require.NoError(t, os.WriteFile(filepath.Join(workingDirectory, "helpsync.yaml"), []byte(manifestDocument), 0o644))

	executor := &recordingToolExecutor{scriptedOutputs: []string{"usage: wavrw\n"}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.DefaultCommandConfiguration()
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Contains(t, outputBuffer.String(), "README.md (1 commands)")

	contents, readError := os.ReadFile(filepath.Join(workingDirectory, "README.md"))
	require.NoError(t, readError)
	require.Contains(t, string(contents), "$ wavrw help")
}

func TestCommandReportsCommandFailure(t *testing.T) {
	documentPath := writeCommandDocument(t, "# WAV Explorer\n\n## Help overview\nstale\n")
	executionFailure := errors.New("exit status 2")
	executor := &recordingToolExecutor{invocationErrors: []error{executionFailure}}
	builder := refresh.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() refresh.CommandConfiguration {
			return refresh.CommandConfiguration{
				Target:   documentPath,
				Marker:   "## Help overview",
				Commands: [][]string{{"wavrw", "help"}},
			}
		},
		Executor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	runError := command.RunE(command, []string{})
	require.ErrorIs(t, runError, executionFailure)
	require.Equal(t, "# WAV Explorer\n\n## Help overview\n", readCommandDocument(t, documentPath))
}
