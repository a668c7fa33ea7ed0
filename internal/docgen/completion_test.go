package docgen_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/helpsync/internal/docgen"
)

func TestCompletionCommandGeneratesScripts(t *testing.T) {
	testCases := []struct {
		name  string
		shell string
	}{
		{name: "bash", shell: "bash"},
		{name: "zsh", shell: "zsh"},
		{name: "fish", shell: "fish"},
		{name: "powershell", shell: "powershell"},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		t.Run(testCase.name, func(t *testing.T) {
			rootCommand := newDocumentedRootCommand()
			builder := docgen.CompletionCommandBuilder{RootCommandProvider: func() *cobra.Command { return rootCommand }}
			command, buildError := builder.Build()
			require.NoError(t, buildError)

			outputBuffer := &bytes.Buffer{}
			command.SetOut(outputBuffer)

			require.NoError(t, command.RunE(command, []string{testCase.shell}))
			require.Contains(t, outputBuffer.String(), "helpsync")
		})
	}
}

func TestCompletionCommandRejectsUnsupportedShell(t *testing.T) {
	rootCommand := newDocumentedRootCommand()
	builder := docgen.CompletionCommandBuilder{RootCommandProvider: func() *cobra.Command { return rootCommand }}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	runError := command.RunE(command, []string{"ruby"})
	require.Error(t, runError)
	require.ErrorContains(t, runError, "unsupported shell")
}

func TestCompletionCommandRequiresRootCommand(t *testing.T) {
	builder := docgen.CompletionCommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})

	runError := command.RunE(command, []string{"bash"})
	require.ErrorIs(t, runError, docgen.ErrRootCommandNotConfigured)
}
