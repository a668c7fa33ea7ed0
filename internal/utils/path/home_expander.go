package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildePrefixConstant           = "~"
	forwardSlashSeparatorConstant = '/'
)

// HomeDirectoryProvider supplies the path of the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts leading tilde shortcuts to absolute paths. The home
// directory lookup runs once and is reused for every expansion.
type HomeExpander struct {
	lookupHomeDirectory func() (string, error)
}

// NewHomeExpander builds an expander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider builds an expander that consults the given
// provider. A nil provider falls back to os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{lookupHomeDirectory: sync.OnceValues(provider)}
}

// Expand resolves a leading tilde to the user's home directory. Paths without
// the shortcut, user-qualified forms such as "~other", and paths whose home
// lookup fails come back unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildePrefixConstant) {
		return candidatePath
	}

	homeDirectoryPath := expander.homeDirectory()
	if len(homeDirectoryPath) == 0 {
		return candidatePath
	}

	if candidatePath == tildePrefixConstant {
		return homeDirectoryPath
	}

	remainderPath := candidatePath[len(tildePrefixConstant):]
	if remainderPath[0] != forwardSlashSeparatorConstant && remainderPath[0] != os.PathSeparator {
		return candidatePath
	}

	return filepath.Join(homeDirectoryPath, remainderPath[1:])
}

func (expander *HomeExpander) homeDirectory() string {
	homeDirectoryPath, lookupError := expander.lookupHomeDirectory()
	if lookupError != nil {
		return ""
	}
	return homeDirectoryPath
}
