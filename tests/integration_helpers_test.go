package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const (
	integrationBinaryNameConstant               = "helpsync-integration"
	integrationBuildTimeout                     = 120 * time.Second
	integrationRunTimeout                       = 60 * time.Second
	integrationConfigurationFileNameConstant    = "config.yaml"
	integrationCaseNameTemplateConstant         = "%d_%s"
	integrationEnvironmentEntryTemplateConstant = "%s=%s"
)

// locateRepositoryRoot resolves the module root. Integration tests run from
// the tests directory, so the root is one level up.
func locateRepositoryRoot(testInstance *testing.T) string {
	testInstance.Helper()

	testDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		testInstance.Fatalf("unable to resolve working directory: %v", workingDirectoryError)
	}
	return filepath.Dir(testDirectory)
}

func runIntegrationCommand(testInstance *testing.T, repositoryRoot string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) string {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", arguments...)
	command.Dir = repositoryRoot
	command.Env = buildIntegrationEnvironment(environmentOverrides)

	outputBytes, runError := command.CombinedOutput()
	outputText := string(outputBytes)
	requireCommandSucceeded(testInstance, runError, outputText)
	return outputText
}

func buildIntegrationBinary(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)

	executionContext, cancel := context.WithTimeout(context.Background(), integrationBuildTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	command.Dir = repositoryRoot
	command.Env = os.Environ()

	outputBytes, buildError := command.CombinedOutput()
	requireCommandSucceeded(testInstance, buildError, string(outputBytes))
	return binaryPath
}

func runBinaryIntegrationCommand(testInstance *testing.T, binaryPath string, workingDirectory string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = buildIntegrationEnvironment(environmentOverrides)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func buildIntegrationEnvironment(environmentOverrides map[string]string) []string {
	environment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentOverrides {
		environment = append(environment, fmt.Sprintf(integrationEnvironmentEntryTemplateConstant, environmentKey, environmentValue))
	}
	return environment
}

func requireCommandSucceeded(testInstance *testing.T, runError error, outputText string) {
	testInstance.Helper()
	if runError != nil {
		testInstance.Fatalf("integration command failed: %v\noutput:\n%s", runError, outputText)
	}
}
