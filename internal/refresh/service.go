package refresh

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/helpsync/internal/execshell"
)

const (
	targetPathRequiredMessageConstant       = "target path must be provided"
	markerRequiredMessageConstant           = "marker must be provided"
	commandsRequiredMessageConstant         = "at least one command must be provided"
	commandArgumentsRequiredMessageConstant = "command argument vectors must not be empty"
	markerNotFoundMessageConstant           = "marker not found in target document"
	commandExecutorMissingMessageConstant   = "command executor not configured"
	fileSystemMissingMessageConstant        = "file system not configured"
	fileAccessErrorTemplateConstant         = "failed to %s %s: %s"
	readOperationNameConstant               = "read"
	createOperationNameConstant             = "create"
	writeOperationNameConstant              = "write"
	closeOperationNameConstant              = "close"
	renameOperationNameConstant             = "rename"
	temporaryFilePatternConstant            = ".helpsync-*"
)

// ErrTargetPathRequired indicates the target path option was empty.
var ErrTargetPathRequired = errors.New(targetPathRequiredMessageConstant)

// ErrMarkerRequired indicates the marker option was empty.
var ErrMarkerRequired = errors.New(markerRequiredMessageConstant)

// ErrCommandsRequired indicates the command list option was empty.
var ErrCommandsRequired = errors.New(commandsRequiredMessageConstant)

// ErrCommandArgumentsRequired indicates a command carried no argument tokens.
var ErrCommandArgumentsRequired = errors.New(commandArgumentsRequiredMessageConstant)

// ErrMarkerNotFound indicates strict marker handling was requested and the marker was absent.
var ErrMarkerNotFound = errors.New(markerNotFoundMessageConstant)

// ErrCommandExecutorNotConfigured indicates the command executor dependency was missing.
var ErrCommandExecutorNotConfigured = errors.New(commandExecutorMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// FileAccessError describes a failed interaction with the target document.
type FileAccessError struct {
	Path      string
	Operation string
	Cause     error
}

// Error describes the failed file operation.
func (accessError FileAccessError) Error() string {
	return fmt.Sprintf(fileAccessErrorTemplateConstant, accessError.Operation, accessError.Path, accessError.Cause)
}

// Unwrap returns the wrapped filesystem error.
func (accessError FileAccessError) Unwrap() error {
	return accessError.Cause
}

// CommandExecutor runs documented tool commands to completion.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Dependencies bundles the collaborators a refresh needs: the filesystem the
// target document lives on and the executor that runs the documented commands.
type Dependencies struct {
	FileSystem FileSystem
	Executor   CommandExecutor
}

// Options configures a document refresh operation.
type Options struct {
	TargetPath       string
	Marker           string
	Commands         []ToolCommand
	WorkingDirectory string
	RequireMarker    bool
	AtomicWrite      bool
}

// Result reports what a completed refresh did to the target document.
type Result struct {
	TargetPath   string
	CommandCount int
	MarkerFound  bool
}

// Service rewrites a documentation file by splicing captured command output
// after the configured marker.
type Service struct {
	fileSystem FileSystem
	executor   CommandExecutor
}

// NewService validates the dependency set and returns a ready Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.Executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}
	return &Service{fileSystem: dependencies.FileSystem, executor: dependencies.Executor}, nil
}

// Refresh regenerates the documented section of the target file from live
// command output. Content before the first marker occurrence is preserved
// verbatim; everything from the marker onward is replaced by one fenced block
// per command, in order. A missing marker appends a fresh section unless
// RequireMarker is set.
func (service *Service) Refresh(executionContext context.Context, options Options) (Result, error) {
	trimmedTargetPath := strings.TrimSpace(options.TargetPath)
	if len(trimmedTargetPath) == 0 {
		return Result{}, ErrTargetPathRequired
	}

	markerText := options.Marker
	if len(strings.TrimSpace(markerText)) == 0 {
		return Result{}, ErrMarkerRequired
	}
	if !strings.HasSuffix(markerText, lineTerminatorConstant) {
		markerText += lineTerminatorConstant
	}

	if len(options.Commands) == 0 {
		return Result{}, ErrCommandsRequired
	}
	for _, toolCommand := range options.Commands {
		if len(toolCommand.Arguments) == 0 {
			return Result{}, ErrCommandArgumentsRequired
		}
	}

	documentContent, readError := service.fileSystem.ReadFile(trimmedTargetPath)
	if readError != nil {
		return Result{}, FileAccessError{Path: trimmedTargetPath, Operation: readOperationNameConstant, Cause: readError}
	}

	documentPrefix, markerFound := SplitAtMarker(documentContent, markerText)
	if !markerFound && options.RequireMarker {
		return Result{}, ErrMarkerNotFound
	}

	trimmedWorkingDirectory := strings.TrimSpace(options.WorkingDirectory)
	if options.AtomicWrite {
		if rewriteError := service.rewriteAtomically(executionContext, trimmedTargetPath, markerText, documentPrefix, options.Commands, trimmedWorkingDirectory); rewriteError != nil {
			return Result{}, rewriteError
		}
		return Result{TargetPath: trimmedTargetPath, CommandCount: len(options.Commands), MarkerFound: markerFound}, nil
	}

	if rewriteError := service.rewriteInPlace(executionContext, trimmedTargetPath, markerText, documentPrefix, options.Commands, trimmedWorkingDirectory); rewriteError != nil {
		return Result{}, rewriteError
	}
	return Result{TargetPath: trimmedTargetPath, CommandCount: len(options.Commands), MarkerFound: markerFound}, nil
}

func (service *Service) rewriteInPlace(executionContext context.Context, targetPath string, markerText string, documentPrefix []byte, commands []ToolCommand, workingDirectory string) error {
	documentFile, createError := service.fileSystem.Create(targetPath)
	if createError != nil {
		return FileAccessError{Path: targetPath, Operation: createOperationNameConstant, Cause: createError}
	}

	writeError := service.writeSections(executionContext, documentFile, markerText, documentPrefix, commands, workingDirectory)
	closeError := documentFile.Close()
	if writeError != nil {
		return writeError
	}
	if closeError != nil {
		return FileAccessError{Path: targetPath, Operation: closeOperationNameConstant, Cause: closeError}
	}
	return nil
}

func (service *Service) rewriteAtomically(executionContext context.Context, targetPath string, markerText string, documentPrefix []byte, commands []ToolCommand, workingDirectory string) error {
	temporaryFile, createError := service.fileSystem.CreateTemp(filepath.Dir(targetPath), temporaryFilePatternConstant)
	if createError != nil {
		return FileAccessError{Path: targetPath, Operation: createOperationNameConstant, Cause: createError}
	}

	temporaryPath := temporaryFile.Name()
	writeError := service.writeSections(executionContext, temporaryFile, markerText, documentPrefix, commands, workingDirectory)
	closeError := temporaryFile.Close()
	if writeError != nil {
		_ = service.fileSystem.Remove(temporaryPath)
		return writeError
	}
	if closeError != nil {
		_ = service.fileSystem.Remove(temporaryPath)
		return FileAccessError{Path: temporaryPath, Operation: closeOperationNameConstant, Cause: closeError}
	}

	if renameError := service.fileSystem.Rename(temporaryPath, targetPath); renameError != nil {
		_ = service.fileSystem.Remove(temporaryPath)
		return FileAccessError{Path: targetPath, Operation: renameOperationNameConstant, Cause: renameError}
	}
	return nil
}

func (service *Service) writeSections(executionContext context.Context, documentFile DocumentFile, markerText string, documentPrefix []byte, commands []ToolCommand, workingDirectory string) error {
	if prefixError := service.writeBytes(documentFile, documentPrefix); prefixError != nil {
		return prefixError
	}
	if markerError := service.writeBytes(documentFile, []byte(markerText)); markerError != nil {
		return markerError
	}

	for _, toolCommand := range commands {
		capturedOutput, executionError := service.executeCommand(executionContext, toolCommand, workingDirectory)
		if executionError != nil {
			return executionError
		}
		if blockError := service.writeBytes(documentFile, RenderCommandBlock(toolCommand, capturedOutput)); blockError != nil {
			return blockError
		}
	}
	return nil
}

func (service *Service) writeBytes(documentFile DocumentFile, payload []byte) error {
	if _, writeError := documentFile.Write(payload); writeError != nil {
		return FileAccessError{Path: documentFile.Name(), Operation: writeOperationNameConstant, Cause: writeError}
	}
	return nil
}

func (service *Service) executeCommand(executionContext context.Context, toolCommand ToolCommand, workingDirectory string) ([]byte, error) {
	shellCommand := execshell.ShellCommand{
		Name: execshell.CommandName(toolCommand.Arguments[0]),
		Details: execshell.CommandDetails{
			Arguments:        toolCommand.Arguments[1:],
			WorkingDirectory: workingDirectory,
		},
	}

	executionResult, executionError := service.executor.Execute(executionContext, shellCommand)
	if executionError != nil {
		return nil, executionError
	}
	return []byte(executionResult.StandardOutput), nil
}
