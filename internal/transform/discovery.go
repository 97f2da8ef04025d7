package transform

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultSourcePatterns selects every Java file below a root.
var DefaultSourcePatterns = []string{"**/*.java"}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds source files with glob patterns and ignore rules.
// Patterns are matched against slash-separated paths relative to the
// directory being walked.
type Discovery struct {
	sourcePatterns []compiledPattern
	ignorePatterns []compiledPattern
	skipDirs       map[string]bool
}

// NewDiscovery compiles the source and ignore patterns. An empty source list
// falls back to DefaultSourcePatterns.
func NewDiscovery(sourcePatterns, ignorePatterns []string) (*Discovery, error) {
	if len(sourcePatterns) == 0 {
		sourcePatterns = DefaultSourcePatterns
	}

	d := &Discovery{skipDirs: make(map[string]bool)}
	var err error
	if d.sourcePatterns, err = compilePatterns(sourcePatterns); err != nil {
		return nil, err
	}
	if d.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}
	return d, nil
}

// CompilePattern reports whether pattern is a valid discovery glob.
func CompilePattern(pattern string) error {
	_, err := glob.Compile(pattern, '/')
	return err
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Err: err}
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// SkipDir excludes a directory (and everything below it) from discovery.
// Used to keep the output directory out of its own input.
func (d *Discovery) SkipDir(dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		d.skipDirs[abs] = true
	}
}

// Discover walks root and returns matching files in sorted order.
func (d *Discovery) Discover(root string) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if path != root && (d.shouldIgnore(relPath) || d.isSkipped(path)) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Match(relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Resolve expands command-line arguments into a sorted, de-duplicated file
// list. Directories are discovered; files are taken as given.
func (d *Discovery) Resolve(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}
		found, err := d.Discover(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Match reports whether a slash-separated relative path is a source file
// that is not ignored.
func (d *Discovery) Match(relPath string) bool {
	return !d.shouldIgnore(relPath) && matchesAnyPattern(relPath, d.sourcePatterns)
}

// Accepts reports whether path, found below root, is a source file that
// discovery of root would have returned.
func (d *Discovery) Accepts(root, path string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return false
	}
	for dir := filepath.Dir(path); dir != root && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if d.isSkipped(dir) {
			return false
		}
	}
	return d.Match(filepath.ToSlash(relPath))
}

func (d *Discovery) isSkipped(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && d.skipDirs[abs]
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	// Always ignore .scrub directory
	if strings.HasPrefix(relPath, ".scrub/") || relPath == ".scrub" {
		return true
	}

	if matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// A directory matches "build/**" through its own name.
	return matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// "**/*.java" should also match "Main.java" at the root.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
