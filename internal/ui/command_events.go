package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/helpsync/internal/execshell"
)

const (
	captureStartedTemplateConstant         = "capturing %s"
	captureCompletedTemplateConstant       = "captured %s"
	captureExitCodeTemplateConstant        = "%s exited with code %d"
	captureLaunchFailureTemplateConstant   = "%s could not be started: %s"
	workingDirectorySuffixTemplateConstant = " (in %s)"
	standardErrorSuffixTemplateConstant    = ": %s"
	labelTokenSeparatorConstant            = " "
	unknownFailureMessageConstant          = "unknown error"
)

// CommandTraceLogger narrates documented tool executions on the console.
// Unlike the structured log narration, the trace shows each command exactly
// as it ran so users can replay it by hand.
type CommandTraceLogger struct {
	logger *zap.Logger
}

// NewCommandTraceLogger constructs a trace logger backed by the provided zap logger.
func NewCommandTraceLogger(logger *zap.Logger) *CommandTraceLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandTraceLogger{logger: logger}
}

// CommandStarted implements execshell.CommandEventObserver by announcing the capture.
func (traceLogger *CommandTraceLogger) CommandStarted(command execshell.ShellCommand) {
	if traceLogger == nil {
		return
	}
	traceLogger.logger.Info(fmt.Sprintf(captureStartedTemplateConstant, commandLabel(command)))
}

// CommandCompleted implements execshell.CommandEventObserver by reporting the
// exit code, including the trimmed standard error when the command failed.
func (traceLogger *CommandTraceLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if traceLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		traceLogger.logger.Info(fmt.Sprintf(captureCompletedTemplateConstant, commandLabel(command)))
		return
	}
	failureMessage := fmt.Sprintf(captureExitCodeTemplateConstant, commandLabel(command), result.ExitCode)
	traceLogger.logger.Warn(failureMessage + standardErrorSuffix(result.StandardError))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by reporting launch failures.
func (traceLogger *CommandTraceLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if traceLogger == nil {
		return
	}
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	traceLogger.logger.Error(fmt.Sprintf(captureLaunchFailureTemplateConstant, commandLabel(command), failureMessage))
}

func commandLabel(command execshell.ShellCommand) string {
	labelTokens := append([]string{string(command.Name)}, command.Details.Arguments...)
	label := strings.Join(labelTokens, labelTokenSeparatorConstant)

	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return label
	}
	return label + fmt.Sprintf(workingDirectorySuffixTemplateConstant, workingDirectory)
}

func standardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}
