package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnvironmentFileNameConstant       = ".env"
	environmentFileLoadErrorTemplateConstant = "failed to load environment file %s: %w"
)

// EnvironmentFileLoader reads dotenv-style files into the process environment
// before configuration is resolved. Variables already present in the
// environment keep their values.
type EnvironmentFileLoader struct{}

// NewEnvironmentFileLoader constructs an EnvironmentFileLoader instance.
func NewEnvironmentFileLoader() EnvironmentFileLoader {
	return EnvironmentFileLoader{}
}

// LoadDefault loads the .env file from the working directory when present.
func (loader EnvironmentFileLoader) LoadDefault() error {
	return loader.Load(defaultEnvironmentFileNameConstant)
}

// Load loads the environment file at the provided path. A missing file is not
// an error; unreadable or malformed files are reported.
func (loader EnvironmentFileLoader) Load(environmentFilePath string) error {
	trimmedPath := strings.TrimSpace(environmentFilePath)
	if len(trimmedPath) == 0 {
		trimmedPath = defaultEnvironmentFileNameConstant
	}

	if _, statError := os.Stat(trimmedPath); statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(environmentFileLoadErrorTemplateConstant, trimmedPath, statError)
	}

	loadError := godotenv.Load(trimmedPath)
	if loadError != nil {
		return fmt.Errorf(environmentFileLoadErrorTemplateConstant, trimmedPath, loadError)
	}

	return nil
}
