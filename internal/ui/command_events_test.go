package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/helpsync/internal/execshell"
	"github.com/temirov/helpsync/internal/ui"
)

func newObservedTraceLogger() (*ui.CommandTraceLogger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	return ui.NewCommandTraceLogger(zap.New(observerCore)), observedLogs
}

func buildCaptureCommand(workingDirectory string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandCargo,
		Details: execshell.CommandDetails{
			Arguments:        []string{"run", "--", "help"},
			WorkingDirectory: workingDirectory,
		},
	}
}

func requireSingleEntry(testInstance *testing.T, observedLogs *observer.ObservedLogs, expectedLevel zapcore.Level, expectedMessage string) {
	testInstance.Helper()

	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, expectedLevel, entries[0].Level)
	require.Equal(testInstance, expectedMessage, entries[0].Message)
}

func TestCommandTraceLoggerAnnouncesCaptureStart(testInstance *testing.T) {
	traceLogger, observedLogs := newObservedTraceLogger()

	traceLogger.CommandStarted(buildCaptureCommand("/tmp/project"))

	requireSingleEntry(testInstance, observedLogs, zapcore.InfoLevel, "capturing cargo run -- help (in /tmp/project)")
}

func TestCommandTraceLoggerReportsCompletion(testInstance *testing.T) {
	testCases := []struct {
		name            string
		result          execshell.ExecutionResult
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name:            "zero_exit_code",
			result:          execshell.ExecutionResult{ExitCode: 0},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "captured cargo run -- help (in /tmp/project)",
		},
		{
			name:            "nonzero_exit_code_with_stderr",
			result:          execshell.ExecutionResult{ExitCode: 1, StandardError: "error: could not compile"},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "cargo run -- help (in /tmp/project) exited with code 1: error: could not compile",
		},
		{
			name:            "nonzero_exit_code_without_stderr",
			result:          execshell.ExecutionResult{ExitCode: 2},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "cargo run -- help (in /tmp/project) exited with code 2",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			traceLogger, observedLogs := newObservedTraceLogger()

			traceLogger.CommandCompleted(buildCaptureCommand("/tmp/project"), testCase.result)

			requireSingleEntry(testInstance, observedLogs, testCase.expectedLevel, testCase.expectedMessage)
		})
	}
}

func TestCommandTraceLoggerReportsLaunchFailures(testInstance *testing.T) {
	traceLogger, observedLogs := newObservedTraceLogger()

	traceLogger.CommandExecutionFailed(buildCaptureCommand(""), errors.New("executable file not found"))

	requireSingleEntry(testInstance, observedLogs, zapcore.ErrorLevel, "cargo run -- help could not be started: executable file not found")
}

func TestCommandTraceLoggerToleratesMissingLogger(testInstance *testing.T) {
	traceLogger := ui.NewCommandTraceLogger(nil)

	require.NotPanics(testInstance, func() {
		traceLogger.CommandStarted(buildCaptureCommand("/tmp/project"))
		traceLogger.CommandCompleted(buildCaptureCommand("/tmp/project"), execshell.ExecutionResult{ExitCode: 0})
		traceLogger.CommandExecutionFailed(buildCaptureCommand(""), errors.New("launch failure"))
	})
}
