package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"di-quality/src/config"
)

// ExclusionMatcher matches class files and class names against exclusion patterns
type ExclusionMatcher struct {
	filePatterns  []string
	files         []string
	classPatterns []*regexp.Regexp
}

// NewExclusionMatcher creates a new exclusion matcher from config.
// Class patterns that fail to compile are dropped with a warning.
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{
		filePatterns: cfg.FilePatterns,
		files:        cfg.Files,
	}

	for _, p := range cfg.ClassPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			Warn("Ignoring invalid class pattern %q: %v", p, err)
			continue
		}
		m.classPatterns = append(m.classPatterns, re)
	}

	return m
}

// MatchesFile reports whether a project-relative file path is excluded
func (m *ExclusionMatcher) MatchesFile(filePath string) bool {
	if m == nil {
		return false
	}
	filePath = filepath.ToSlash(filePath)

	for _, f := range m.files {
		if filePath == f {
			return true
		}
	}

	for _, pattern := range m.filePatterns {
		if MatchGlob(pattern, filePath) {
			return true
		}
	}
	return false
}

// MatchesClass reports whether a simple class name is excluded
func (m *ExclusionMatcher) MatchesClass(className string) bool {
	if m == nil || className == "" {
		return false
	}
	for _, re := range m.classPatterns {
		if re.MatchString(className) {
			return true
		}
	}
	return false
}

// doubleGlobRegexp translates a glob containing ** into an anchored regexp.
// "**/" matches zero or more directories, "*" and "?" stay within one segment.
func doubleGlobRegexp(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			sb.WriteString("(?:.*/)?")
			i += 2
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(".*")
			i++
		case c == '*':
			sb.WriteString("[^/]*")
		case c == '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

// MatchGlob matches a path against a glob pattern
func MatchGlob(pattern, path string) bool {
	if strings.Contains(pattern, "**") {
		re, err := doubleGlobRegexp(pattern)
		return err == nil && re.MatchString(path)
	}
	if matched, _ := filepath.Match(pattern, path); matched {
		return true
	}
	// Bare file globs such as "*.class" apply to the base name.
	if !strings.Contains(pattern, "/") {
		matched, _ := filepath.Match(pattern, filepath.Base(path))
		return matched
	}
	return false
}

// SimpleName strips package qualifiers, keeping the last dot-separated segment
func SimpleName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
