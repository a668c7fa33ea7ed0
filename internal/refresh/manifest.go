package refresh

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultManifestFileNameConstant is the manifest file discovered in the working directory.
const DefaultManifestFileNameConstant = "helpsync.yaml"

const (
	manifestPathRequiredMessageConstant       = "manifest path must be provided"
	manifestLoadErrorTemplateConstant         = "failed to load manifest: %w"
	manifestParseErrorTemplateConstant        = "failed to parse manifest: %w"
	manifestEmptyMessageConstant              = "manifest must define at least one refresh setting"
	manifestEmptyCommandVectorMessageConstant = "manifest command vectors must contain at least one argument"
)

// Manifest describes a committed refresh definition kept next to the document.
// Boolean settings use pointers so that an absent key leaves the base
// configuration untouched.
type Manifest struct {
	Target           string     `yaml:"target"`
	Marker           string     `yaml:"marker"`
	WorkingDirectory string     `yaml:"working_directory"`
	Launcher         []string   `yaml:"launcher"`
	DisplayName      string     `yaml:"display_name"`
	Commands         [][]string `yaml:"commands"`
	RequireMarker    *bool      `yaml:"require_marker"`
	AtomicWrite      *bool      `yaml:"atomic_write"`
}

// LoadManifest reads a manifest from disk, validates it against the embedded
// schema, and accepts both the wrapped and the unwrapped document layout.
func LoadManifest(filePath string) (Manifest, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Manifest{}, errors.New(manifestPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestLoadErrorTemplateConstant, readError)
	}

	if validationError := validateManifestDocument(trimmedPath, contentBytes); validationError != nil {
		return Manifest{}, validationError
	}

	var manifest Manifest
	if unmarshalError := yaml.Unmarshal(contentBytes, &manifest); unmarshalError != nil {
		return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}
	if manifest.isEmpty() {
		var wrapper struct {
			Helpsync Manifest `yaml:"helpsync"`
		}
		if unmarshalError := yaml.Unmarshal(contentBytes, &wrapper); unmarshalError != nil {
			return Manifest{}, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
		}
		manifest = wrapper.Helpsync
	}
	if manifest.isEmpty() {
		return Manifest{}, errors.New(manifestEmptyMessageConstant)
	}

	for _, commandVector := range manifest.Commands {
		if len(sanitizeArgumentTokens(commandVector)) == 0 {
			return Manifest{}, errors.New(manifestEmptyCommandVectorMessageConstant)
		}
	}

	return manifest, nil
}

// ApplyTo overlays the manifest's explicit settings onto a base configuration.
func (manifest Manifest) ApplyTo(base CommandConfiguration) CommandConfiguration {
	merged := base
	if len(strings.TrimSpace(manifest.Target)) > 0 {
		merged.Target = manifest.Target
	}
	if len(strings.TrimSpace(manifest.Marker)) > 0 {
		merged.Marker = manifest.Marker
	}
	if len(strings.TrimSpace(manifest.WorkingDirectory)) > 0 {
		merged.WorkingDirectory = manifest.WorkingDirectory
	}
	if len(manifest.Launcher) > 0 {
		merged.Launcher = manifest.Launcher
	}
	if len(strings.TrimSpace(manifest.DisplayName)) > 0 {
		merged.DisplayName = manifest.DisplayName
	}
	if len(manifest.Commands) > 0 {
		merged.Commands = manifest.Commands
	}
	if manifest.RequireMarker != nil {
		merged.RequireMarker = *manifest.RequireMarker
	}
	if manifest.AtomicWrite != nil {
		merged.AtomicWrite = *manifest.AtomicWrite
	}
	return merged
}

func (manifest Manifest) isEmpty() bool {
	return len(strings.TrimSpace(manifest.Target)) == 0 &&
		len(strings.TrimSpace(manifest.Marker)) == 0 &&
		len(strings.TrimSpace(manifest.WorkingDirectory)) == 0 &&
		len(manifest.Launcher) == 0 &&
		len(strings.TrimSpace(manifest.DisplayName)) == 0 &&
		len(manifest.Commands) == 0 &&
		manifest.RequireMarker == nil &&
		manifest.AtomicWrite == nil
}
