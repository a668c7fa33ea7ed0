package execshell

import (
	"fmt"
	"strings"
)

// outcomeKind distinguishes the lifecycle moments narrated for a command.
type outcomeKind int

const (
	outcomeStarting outcomeKind = iota
	outcomeSucceeded
	outcomeExitedNonZero
	outcomeNotLaunched
)

// outcomeDetail carries the exit information failure narrations interpolate.
type outcomeDetail struct {
	exitCode       int
	exitSuffix     string
	failureMessage string
}

func newOutcomeDetail(result ExecutionResult, failure error) outcomeDetail {
	detail := outcomeDetail{
		exitCode:       result.ExitCode,
		exitSuffix:     formatStandardErrorDetail(result.StandardError),
		failureMessage: launchFailureFallbackMessageConstant,
	}
	if failure != nil {
		detail.failureMessage = failure.Error()
	}
	return detail
}

const (
	fallbackStartTemplateConstant         = "Running %s"
	fallbackSuccessTemplateConstant       = "Completed %s"
	fallbackFailureTemplateConstant       = "%s failed with exit code %d%s"
	fallbackLaunchFailureTemplateConstant = "%s failed: %s"
	directorySuffixTemplateConstant       = " (in %s)"
	argumentJoinSeparatorConstant         = " "
	launchFailureFallbackMessageConstant  = "unknown error"
	currentDirectoryLabelConstant         = "current directory"
	emptyStringConstant                   = ""
)

const (
	cargoRunSubcommandNameConstant   = "run"
	cargoBuildSubcommandNameConstant = "build"
	cargoArgumentSeparatorConstant   = "--"
	goRunSubcommandNameConstant      = "run"
	goBuildSubcommandNameConstant    = "build"
	flagArgumentPrefixConstant       = "-"
)

const (
	cargoRunStartTemplateConstant                            = "Running cargo project with %s in %s"
	cargoRunWithoutArgumentsStartTemplateConstant            = "Running cargo project in %s"
	cargoRunSuccessTemplateConstant                          = "Captured cargo project output for %s in %s"
	cargoRunWithoutArgumentsSuccessTemplateConstant          = "Captured cargo project output in %s"
	cargoRunFailureTemplateConstant                          = "Failed to run cargo project with %s in %s (exit code %d%s)"
	cargoRunWithoutArgumentsFailureTemplateConstant          = "Failed to run cargo project in %s (exit code %d%s)"
	cargoRunExecutionFailureTemplateConstant                 = "Unable to run cargo project with %s in %s: %s"
	cargoRunWithoutArgumentsExecutionFailureTemplateConstant = "Unable to run cargo project in %s: %s"
	cargoBuildStartTemplateConstant                          = "Building cargo project in %s"
	cargoBuildSuccessTemplateConstant                        = "Built cargo project in %s"
	cargoBuildFailureTemplateConstant                        = "Failed to build cargo project in %s (exit code %d%s)"
	cargoBuildExecutionFailureTemplateConstant               = "Unable to build cargo project in %s: %s"
)

const (
	goRunStartTemplateConstant                             = "Running Go program %s with %s in %s"
	goRunWithoutArgumentsStartTemplateConstant             = "Running Go program %s in %s"
	goRunSuccessTemplateConstant                           = "Captured Go program output from %s in %s"
	goRunFailureTemplateConstant                           = "Failed to run Go program %s in %s (exit code %d%s)"
	goRunExecutionFailureTemplateConstant                  = "Unable to run Go program %s in %s: %s"
	goBuildStartTemplateConstant                           = "Building Go packages %s in %s"
	goBuildWithoutPackagesStartTemplateConstant            = "Building Go packages in %s"
	goBuildSuccessTemplateConstant                         = "Built Go packages %s in %s"
	goBuildWithoutPackagesSuccessTemplateConstant          = "Built Go packages in %s"
	goBuildFailureTemplateConstant                         = "Failed to build Go packages %s in %s (exit code %d%s)"
	goBuildWithoutPackagesFailureTemplateConstant          = "Failed to build Go packages in %s (exit code %d%s)"
	goBuildExecutionFailureTemplateConstant                = "Unable to build Go packages %s in %s: %s"
	goBuildWithoutPackagesExecutionFailureTemplateConstant = "Unable to build Go packages in %s: %s"
	goFallbackProgramLabelConstant                         = "main package"
)

const (
	makeTargetStartTemplateConstant                   = "Running make target %s in %s"
	makeDefaultTargetStartTemplateConstant            = "Running default make target in %s"
	makeTargetSuccessTemplateConstant                 = "Completed make target %s in %s"
	makeDefaultTargetSuccessTemplateConstant          = "Completed default make target in %s"
	makeTargetFailureTemplateConstant                 = "Failed to run make target %s in %s (exit code %d%s)"
	makeDefaultTargetFailureTemplateConstant          = "Failed to run default make target in %s (exit code %d%s)"
	makeTargetExecutionFailureTemplateConstant        = "Unable to run make target %s in %s: %s"
	makeDefaultTargetExecutionFailureTemplateConstant = "Unable to run default make target in %s: %s"
)

// CommandMessageFormatter narrates command lifecycle events in human-readable
// form. Invocations of the documented tool families get tailored phrasing;
// anything else falls back to a label built from the raw argument vector.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command the executor is about to launch.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.describe(command, outcomeStarting, outcomeDetail{})
}

// BuildSuccessMessage describes a command that completed with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.describe(command, outcomeSucceeded, outcomeDetail{})
}

// BuildFailureMessage describes a command that completed with a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.describe(command, outcomeExitedNonZero, newOutcomeDetail(result, nil))
}

// BuildExecutionFailureMessage describes a command that could not be launched.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.describe(command, outcomeNotLaunched, newOutcomeDetail(ExecutionResult{}, failure))
}

func (formatter CommandMessageFormatter) describe(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	switch command.Name {
	case CommandCargo:
		return formatter.describeCargo(command, outcome, detail)
	case CommandGo:
		return formatter.describeGo(command, outcome, detail)
	case CommandMake:
		return formatter.describeMake(command, outcome, detail)
	default:
		return formatter.fallbackMessage(command, outcome, detail)
	}
}

func (formatter CommandMessageFormatter) describeCargo(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.fallbackMessage(command, outcome, detail)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case cargoRunSubcommandNameConstant:
		return formatter.describeCargoRun(command, outcome, detail)
	case cargoBuildSubcommandNameConstant:
		return formatter.describeCargoBuild(command, outcome, detail)
	default:
		return formatter.fallbackMessage(command, outcome, detail)
	}
}

func (formatter CommandMessageFormatter) describeCargoRun(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	workingDirectory := workingDirectoryLabel(command)
	delegatedArguments := joinArguments(extractDelegatedArguments(command.Details.Arguments))

	if len(delegatedArguments) == 0 {
		switch outcome {
		case outcomeStarting:
			return fmt.Sprintf(cargoRunWithoutArgumentsStartTemplateConstant, workingDirectory)
		case outcomeSucceeded:
			return fmt.Sprintf(cargoRunWithoutArgumentsSuccessTemplateConstant, workingDirectory)
		case outcomeExitedNonZero:
			return fmt.Sprintf(cargoRunWithoutArgumentsFailureTemplateConstant, workingDirectory, detail.exitCode, detail.exitSuffix)
		default:
			return fmt.Sprintf(cargoRunWithoutArgumentsExecutionFailureTemplateConstant, workingDirectory, detail.failureMessage)
		}
	}

	switch outcome {
	case outcomeStarting:
		return fmt.Sprintf(cargoRunStartTemplateConstant, delegatedArguments, workingDirectory)
	case outcomeSucceeded:
		return fmt.Sprintf(cargoRunSuccessTemplateConstant, delegatedArguments, workingDirectory)
	case outcomeExitedNonZero:
		return fmt.Sprintf(cargoRunFailureTemplateConstant, delegatedArguments, workingDirectory, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(cargoRunExecutionFailureTemplateConstant, delegatedArguments, workingDirectory, detail.failureMessage)
	}
}

func (formatter CommandMessageFormatter) describeCargoBuild(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	workingDirectory := workingDirectoryLabel(command)

	switch outcome {
	case outcomeStarting:
		return fmt.Sprintf(cargoBuildStartTemplateConstant, workingDirectory)
	case outcomeSucceeded:
		return fmt.Sprintf(cargoBuildSuccessTemplateConstant, workingDirectory)
	case outcomeExitedNonZero:
		return fmt.Sprintf(cargoBuildFailureTemplateConstant, workingDirectory, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(cargoBuildExecutionFailureTemplateConstant, workingDirectory, detail.failureMessage)
	}
}

func (formatter CommandMessageFormatter) describeGo(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.fallbackMessage(command, outcome, detail)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case goRunSubcommandNameConstant:
		return formatter.describeGoRun(command, outcome, detail)
	case goBuildSubcommandNameConstant:
		return formatter.describeGoBuild(command, outcome, detail)
	default:
		return formatter.fallbackMessage(command, outcome, detail)
	}
}

func (formatter CommandMessageFormatter) describeGoRun(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	workingDirectory := workingDirectoryLabel(command)
	programPath, programArguments := extractProgramAndArguments(command.Details.Arguments)
	if len(programPath) == 0 {
		programPath = goFallbackProgramLabelConstant
	}

	switch outcome {
	case outcomeStarting:
		joinedProgramArguments := joinArguments(programArguments)
		if len(joinedProgramArguments) == 0 {
			return fmt.Sprintf(goRunWithoutArgumentsStartTemplateConstant, programPath, workingDirectory)
		}
		return fmt.Sprintf(goRunStartTemplateConstant, programPath, joinedProgramArguments, workingDirectory)
	case outcomeSucceeded:
		return fmt.Sprintf(goRunSuccessTemplateConstant, programPath, workingDirectory)
	case outcomeExitedNonZero:
		return fmt.Sprintf(goRunFailureTemplateConstant, programPath, workingDirectory, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(goRunExecutionFailureTemplateConstant, programPath, workingDirectory, detail.failureMessage)
	}
}

func (formatter CommandMessageFormatter) describeGoBuild(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	workingDirectory := workingDirectoryLabel(command)
	packagePatterns := joinArguments(positionalArguments(command.Details.Arguments[1:]))

	if len(packagePatterns) == 0 {
		switch outcome {
		case outcomeStarting:
			return fmt.Sprintf(goBuildWithoutPackagesStartTemplateConstant, workingDirectory)
		case outcomeSucceeded:
			return fmt.Sprintf(goBuildWithoutPackagesSuccessTemplateConstant, workingDirectory)
		case outcomeExitedNonZero:
			return fmt.Sprintf(goBuildWithoutPackagesFailureTemplateConstant, workingDirectory, detail.exitCode, detail.exitSuffix)
		default:
			return fmt.Sprintf(goBuildWithoutPackagesExecutionFailureTemplateConstant, workingDirectory, detail.failureMessage)
		}
	}

	switch outcome {
	case outcomeStarting:
		return fmt.Sprintf(goBuildStartTemplateConstant, packagePatterns, workingDirectory)
	case outcomeSucceeded:
		return fmt.Sprintf(goBuildSuccessTemplateConstant, packagePatterns, workingDirectory)
	case outcomeExitedNonZero:
		return fmt.Sprintf(goBuildFailureTemplateConstant, packagePatterns, workingDirectory, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(goBuildExecutionFailureTemplateConstant, packagePatterns, workingDirectory, detail.failureMessage)
	}
}

func (formatter CommandMessageFormatter) describeMake(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	workingDirectory := workingDirectoryLabel(command)
	makeTarget := firstPositionalArgument(command.Details.Arguments)

	if len(makeTarget) == 0 {
		switch outcome {
		case outcomeStarting:
			return fmt.Sprintf(makeDefaultTargetStartTemplateConstant, workingDirectory)
		case outcomeSucceeded:
			return fmt.Sprintf(makeDefaultTargetSuccessTemplateConstant, workingDirectory)
		case outcomeExitedNonZero:
			return fmt.Sprintf(makeDefaultTargetFailureTemplateConstant, workingDirectory, detail.exitCode, detail.exitSuffix)
		default:
			return fmt.Sprintf(makeDefaultTargetExecutionFailureTemplateConstant, workingDirectory, detail.failureMessage)
		}
	}

	switch outcome {
	case outcomeStarting:
		return fmt.Sprintf(makeTargetStartTemplateConstant, makeTarget, workingDirectory)
	case outcomeSucceeded:
		return fmt.Sprintf(makeTargetSuccessTemplateConstant, makeTarget, workingDirectory)
	case outcomeExitedNonZero:
		return fmt.Sprintf(makeTargetFailureTemplateConstant, makeTarget, workingDirectory, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(makeTargetExecutionFailureTemplateConstant, makeTarget, workingDirectory, detail.failureMessage)
	}
}

func (formatter CommandMessageFormatter) fallbackMessage(command ShellCommand, outcome outcomeKind, detail outcomeDetail) string {
	commandLabel := formatCommandLabel(command) + directorySuffix(command)

	switch outcome {
	case outcomeStarting:
		return fmt.Sprintf(fallbackStartTemplateConstant, commandLabel)
	case outcomeSucceeded:
		return fmt.Sprintf(fallbackSuccessTemplateConstant, commandLabel)
	case outcomeExitedNonZero:
		return fmt.Sprintf(fallbackFailureTemplateConstant, commandLabel, detail.exitCode, detail.exitSuffix)
	default:
		return fmt.Sprintf(fallbackLaunchFailureTemplateConstant, commandLabel, detail.failureMessage)
	}
}

func directorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(directorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func workingDirectoryLabel(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return currentDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

// extractDelegatedArguments returns the arguments a cargo run invocation
// forwards to the built binary. Arguments after the first "--" separator are
// delegated verbatim; without a separator the non-flag arguments following the
// subcommand are used.
func extractDelegatedArguments(arguments []string) []string {
	for index, argument := range arguments {
		if strings.TrimSpace(argument) == cargoArgumentSeparatorConstant {
			return arguments[index+1:]
		}
	}
	if len(arguments) == 0 {
		return nil
	}
	return positionalArguments(arguments[1:])
}

// extractProgramAndArguments splits a go run argument vector into the program
// path and the arguments delivered to the program.
func extractProgramAndArguments(arguments []string) (string, []string) {
	for index := 1; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagArgumentPrefixConstant) {
			continue
		}
		return trimmed, arguments[index+1:]
	}
	return emptyStringConstant, nil
}

func positionalArguments(arguments []string) []string {
	collected := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagArgumentPrefixConstant) {
			continue
		}
		collected = append(collected, trimmed)
	}
	return collected
}

func firstPositionalArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagArgumentPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func joinArguments(arguments []string) string {
	cleaned := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	return strings.Join(cleaned, argumentJoinSeparatorConstant)
}
