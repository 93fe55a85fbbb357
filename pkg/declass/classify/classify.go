// Package classify maps archive entry names to processing categories.
// Classification is pure and deterministic: the same name and options
// always produce the same Kind.
package classify

import (
	"fmt"
	"strings"

	"github.com/declass/declass/pkg/declass/options"
	"github.com/gobwas/glob"
)

// Kind is the processing category of an archive entry.
type Kind int

const (
	// KindSkipped marks entries excluded by pattern or configuration.
	KindSkipped Kind = iota

	// KindClass marks class-file entries destined for the class cache.
	KindClass

	// KindArchive marks nested jar/war/ear/zip entries.
	KindArchive

	// KindResource marks all remaining entries, forwarded verbatim.
	KindResource
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSkipped:
		return "skipped"
	case KindClass:
		return "class"
	case KindArchive:
		return "archive"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// ClassSuffix is the file suffix identifying class-file entries.
const ClassSuffix = ".class"

// archiveSuffixes identify nested container entries.
var archiveSuffixes = []string{".jar", ".war", ".ear", ".zip"}

// Classifier assigns a Kind to archive entry names based on
// decompiler options. Patterns are compiled once at construction.
type Classifier struct {
	skipResources bool
	innerArchives bool
	include       []glob.Glob
	exclude       []glob.Glob
}

// New creates a Classifier from the given options.
// It returns an error if any include/exclude pattern does not compile.
func New(opts *options.DecompilerOptions) (*Classifier, error) {
	c := &Classifier{
		skipResources: opts.SkipResources,
		innerArchives: opts.DecompileInnerArchives,
	}

	var err error
	if c.include, err = compilePatterns(opts.Include); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if c.exclude, err = compilePatterns(opts.Exclude); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	return c, nil
}

// compilePatterns compiles glob patterns with '/' as the separator,
// matching the slash-separated entry names inside archives.
func compilePatterns(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// Classify returns the processing category for an entry name.
// Checks run in a fixed order: patterns, class suffix, archive suffix,
// resource. The class-file check precedes the nested-archive check.
func (c *Classifier) Classify(name string) Kind {
	if c.skipPath(name) {
		return KindSkipped
	}
	if IsClassFile(name) {
		return KindClass
	}
	if c.innerArchives && IsArchive(name) {
		return KindArchive
	}
	if c.skipResources {
		return KindSkipped
	}
	return KindResource
}

// skipPath reports whether the name is rejected by the configured
// include/exclude patterns. Exclude wins over include.
func (c *Classifier) skipPath(name string) bool {
	for _, g := range c.exclude {
		if g.Match(name) {
			return true
		}
	}
	if len(c.include) == 0 {
		return false
	}
	for _, g := range c.include {
		if g.Match(name) {
			return false
		}
	}
	return true
}

// IsClassFile reports whether the entry name has the class-file suffix.
func IsClassFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ClassSuffix)
}

// IsArchive reports whether the entry name has a container suffix
// (jar, war, ear, or zip).
func IsArchive(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsInnerClass reports whether a binary class name denotes a nested
// class. Inner classes are cached but never dispatched directly; they
// are reached through their enclosing class.
func IsInnerClass(name string) bool {
	return strings.Contains(name, "$")
}

// TrimClassSuffix strips the class-file suffix from an entry name,
// yielding the binary class name.
func TrimClassSuffix(name string) string {
	if IsClassFile(name) {
		return name[:len(name)-len(ClassSuffix)]
	}
	return name
}
