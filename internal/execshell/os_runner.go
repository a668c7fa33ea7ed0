package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentAssignmentTemplateConstant = "%s=%s"

// OSCommandRunner launches processes through os/exec with captured output.
type OSCommandRunner struct{}

// NewOSCommandRunner returns a runner that launches processes through os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command to completion. Standard output and
// standard error are captured in full; a non-zero exit code is reported
// through the result rather than as an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	var standardOutputBuffer, standardErrorBuffer bytes.Buffer

	process := runner.buildProcess(executionContext, command)
	process.Stdout = &standardOutputBuffer
	process.Stderr = &standardErrorBuffer

	runError := process.Run()

	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if runError == nil {
		return executionResult, nil
	}

	exitError := &exec.ExitError{}
	if !errors.As(runError, &exitError) {
		return ExecutionResult{}, runError
	}

	executionResult.ExitCode = exitError.ExitCode()
	return executionResult, nil
}

func (runner *OSCommandRunner) buildProcess(executionContext context.Context, command ShellCommand) *exec.Cmd {
	process := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		process.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		process.Env = mergedEnvironment(command.Details.EnvironmentVariables)
	}

	return process
}

func mergedEnvironment(environmentVariables map[string]string) []string {
	environment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentVariables {
		environment = append(environment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
	}
	return environment
}
