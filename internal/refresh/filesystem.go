package refresh

import (
	"io"
	"os"
)

// DocumentFile is the writable handle used while rewriting a document.
type DocumentFile interface {
	io.Writer
	Close() error
	Name() string
}

// FileSystem abstracts the document store interactions performed by the
// refresh service so tests can observe partially written content.
type FileSystem interface {
	ReadFile(filePath string) ([]byte, error)
	Create(filePath string) (DocumentFile, error)
	CreateTemp(directoryPath string, namePattern string) (DocumentFile, error)
	Rename(oldPath string, newPath string) error
	Remove(filePath string) error
}

// OSFileSystem implements FileSystem against the host operating system.
type OSFileSystem struct{}

// ReadFile returns the full contents of the file at filePath.
func (OSFileSystem) ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// Create opens the file at filePath for writing, truncating existing content.
func (OSFileSystem) Create(filePath string) (DocumentFile, error) {
	createdFile, createError := os.Create(filePath)
	if createError != nil {
		return nil, createError
	}
	return createdFile, nil
}

// CreateTemp creates a uniquely named file inside directoryPath using namePattern.
func (OSFileSystem) CreateTemp(directoryPath string, namePattern string) (DocumentFile, error) {
	temporaryFile, createError := os.CreateTemp(directoryPath, namePattern)
	if createError != nil {
		return nil, createError
	}
	return temporaryFile, nil
}

// Rename replaces newPath with the file at oldPath.
func (OSFileSystem) Rename(oldPath string, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Remove deletes the file at filePath.
func (OSFileSystem) Remove(filePath string) error {
	return os.Remove(filePath)
}
