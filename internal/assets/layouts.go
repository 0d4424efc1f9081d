package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
)

// layoutExt is tried when a layout reference has no extension.
const layoutExt = ".html"

// LayoutLoader loads site layouts from a directory. Loaded layouts are
// cached; it is safe for concurrent use.
type LayoutLoader struct {
	dir string

	mu    sync.Mutex
	cache map[string]string
}

// NewLayoutLoader creates a LayoutLoader for dir.
// Returns ErrInvalidBasePath if dir is not a readable directory.
func NewLayoutLoader(dir string) (*LayoutLoader, error) {
	absDir, err := resolveBaseDir(dir)
	if err != nil {
		return nil, err
	}
	return &LayoutLoader{dir: absDir, cache: make(map[string]string)}, nil
}

// LoadLayout returns the layout file named name, relative to the layouts
// directory. "base" resolves to base.html when no file "base" exists.
// Returns ErrLayoutNotFound if neither exists.
func (l *LayoutLoader) LoadLayout(name string) (string, error) {
	if err := ValidateLayoutName(name); err != nil {
		return "", err
	}

	l.mu.Lock()
	cached, ok := l.cache[name]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = append(candidates, name+layoutExt)
	}

	for _, candidate := range candidates {
		filePath := filepath.Join(l.dir, filepath.FromSlash(candidate))
		if _, err := os.Lstat(filePath); os.IsNotExist(err) {
			continue
		}
		if err := verifyPathContainment(l.dir, filePath); err != nil {
			return "", err
		}

		content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
		}

		l.mu.Lock()
		l.cache[name] = string(content)
		l.mu.Unlock()
		return string(content), nil
	}

	return "", fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
}

// ListLayouts returns the layout files available, as slash-separated paths
// relative to the layouts directory, sorted.
func (l *LayoutLoader) ListLayouts() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	sort.Strings(names)
	return names, nil
}
