package pathutils

import (
	"path/filepath"
	"strings"
)

// TargetPathResolver normalizes document target paths consistently across commands.
type TargetPathResolver struct {
	homeExpander *HomeExpander
}

// NewTargetPathResolver constructs a TargetPathResolver with default behavior.
func NewTargetPathResolver() *TargetPathResolver {
	return NewTargetPathResolverWithExpander(nil)
}

// NewTargetPathResolverWithExpander constructs a TargetPathResolver using the provided expander.
func NewTargetPathResolverWithExpander(homeExpander *HomeExpander) *TargetPathResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &TargetPathResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands the user's home directory, and anchors
// relative paths at the provided base directory. An empty candidate resolves
// to an empty string, and an empty base directory leaves relative paths
// relative to the process working directory.
func (resolver *TargetPathResolver) Resolve(baseDirectory string, candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expander := resolver.resolveExpander()
	expandedPath := expander.Expand(trimmedCandidate)
	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath)
	}

	trimmedBaseDirectory := strings.TrimSpace(baseDirectory)
	if len(trimmedBaseDirectory) == 0 {
		return filepath.Clean(expandedPath)
	}

	expandedBaseDirectory := expander.Expand(trimmedBaseDirectory)
	return filepath.Join(expandedBaseDirectory, expandedPath)
}

func (resolver *TargetPathResolver) resolveExpander() *HomeExpander {
	if resolver == nil || resolver.homeExpander == nil {
		return NewHomeExpander()
	}
	return resolver.homeExpander
}
