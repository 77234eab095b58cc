package logfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Guard confines file access to a single log directory.
type Guard struct {
	root     string
	patterns []string
}

// NewGuard canonicalizes root and returns a Guard for it. Non-empty patterns are
// doublestar globs matched against the slash-separated path relative to root; a
// file must match at least one of them to be served.
func NewGuard(root string, patterns []string) (*Guard, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve log directory %q: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve log directory %q: %w", root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat log directory %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log directory %q is not a directory", resolved)
	}

	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid file pattern %q", p)
		}
	}

	return &Guard{root: resolved, patterns: patterns}, nil
}

// Root returns the canonical log directory.
func (g *Guard) Root() string {
	return g.root
}

// Validate resolves filename inside the log directory and returns the absolute,
// symlink-free path of the regular file it names. Errors wrap ErrInvalidPath,
// ErrNotFound or ErrUnreadable.
func (g *Guard) Validate(filename string) (string, error) {
	if err := checkName(filename); err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(g.root, filename))
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		// ENOENT, ENOTDIR and dangling links all mean there is nothing to serve
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	rel, ok := g.relative(resolved)
	if !ok {
		return "", fmt.Errorf("%w: %q resolves outside the log directory", ErrInvalidPath, filename)
	}
	if !g.allowed(rel) {
		return "", fmt.Errorf("%w: %q does not match any allowed pattern", ErrNotFound, filename)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrNotFound, resolved)
	}

	if err := checkReadable(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, resolved, err)
	}

	return resolved, nil
}

// relative returns path relative to the root, or false when path is not a
// descendant of it.
func (g *Guard) relative(path string) (string, bool) {
	rel, err := filepath.Rel(g.root, path)
	if err != nil || filepath.IsAbs(rel) {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func (g *Guard) allowed(rel string) bool {
	if len(g.patterns) == 0 {
		return true
	}
	name := filepath.ToSlash(rel)
	for _, p := range g.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// checkName rejects names that must never reach the filesystem.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty file name", ErrInvalidPath)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: file name contains a null byte", ErrInvalidPath)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return fmt.Errorf("%w: absolute path %q", ErrInvalidPath, name)
	}
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		if part == ".." {
			return fmt.Errorf("%w: %q contains a parent directory reference", ErrInvalidPath, name)
		}
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
