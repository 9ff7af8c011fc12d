package playlist

import (
	"fmt"
	"path"

	"github.com/gobwas/glob"
)

// PatternMatcher selects site files by slash-separated glob patterns.
// "*" stays within one directory; "**" crosses directories.
type PatternMatcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewPatternMatcher compiles include and exclude patterns.
func NewPatternMatcher(include, exclude []string) (*PatternMatcher, error) {
	pm := &PatternMatcher{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern '%s': %w", pattern, err)
		}
		pm.include = append(pm.include, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		pm.exclude = append(pm.exclude, g)
	}

	return pm, nil
}

// Match reports whether the slash-separated relative path is selected.
func (pm *PatternMatcher) Match(rel string) bool {
	rel = path.Clean(rel)

	// Exclude patterns take precedence
	for _, pattern := range pm.exclude {
		if pattern.Match(rel) {
			return false
		}
	}

	if len(pm.include) == 0 {
		return true
	}

	for _, pattern := range pm.include {
		if pattern.Match(rel) {
			return true
		}
	}
	return false
}
