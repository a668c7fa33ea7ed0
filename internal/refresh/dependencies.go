package refresh

import (
	"go.uber.org/zap"

	"github.com/temirov/helpsync/internal/execshell"
	"github.com/temirov/helpsync/internal/ui"
)

// ResolveFileSystem returns the provided file system or an OS-backed default.
func ResolveFileSystem(existing FileSystem) FileSystem {
	if existing != nil {
		return existing
	}
	return OSFileSystem{}
}

// ResolveCommandExecutor returns the provided executor or constructs a
// shell-backed default. Human readable logging attaches the console observer
// so lifecycle events render as replayable command lines.
func ResolveCommandExecutor(existing CommandExecutor, logger *zap.Logger, humanReadableLogging bool) (CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewCommandTraceLogger(logger))
	}
	return shellExecutor, nil
}
