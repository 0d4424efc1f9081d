package site

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a discovered file by how it is built.
type Kind string

// File kinds.
const (
	KindPage     Kind = "page"
	KindNotebook Kind = "notebook"
	KindAsset    Kind = "asset"
)

// Task is one file to build.
type Task struct {
	InputPath  string
	OutputPath string
	Kind       Kind
}

// Discover lists the files a build processes: matching files under the
// source directory, sorted by path, then the assets directory contents.
// Output, layouts and assets directories nested in the source tree are
// skipped.
func (b *Builder) Discover() ([]Task, error) {
	var tasks []Task

	err := filepath.WalkDir(b.srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != b.srcDir && b.isSkippedDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(b.srcDir, path)
		if err != nil {
			return err
		}
		matched, err := b.matches(filepath.ToSlash(rel))
		if err != nil || !matched {
			return err
		}

		tasks = append(tasks, b.sourceTask(path, rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if b.assetsDir != "" {
		assetTasks, err := b.discoverAssets()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, assetTasks...)
	}

	return tasks, nil
}

// sourceTask classifies a file from the source tree.
func (b *Builder) sourceTask(path, rel string) Task {
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".html", ".htm":
		return Task{InputPath: path, OutputPath: filepath.Join(b.outDir, rel), Kind: KindPage}
	case ".ipynb":
		out := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
		return Task{InputPath: path, OutputPath: filepath.Join(b.outDir, out), Kind: KindNotebook}
	default:
		return Task{InputPath: path, OutputPath: filepath.Join(b.outDir, rel), Kind: KindAsset}
	}
}

// discoverAssets lists every file under the assets directory.
func (b *Builder) discoverAssets() ([]Task, error) {
	var tasks []Task
	err := filepath.WalkDir(b.assetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetsDir, err)
		}
		if d.IsDir() {
			if path == b.outDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(b.assetsDir, path)
		if err != nil {
			return err
		}
		tasks = append(tasks, Task{InputPath: path, OutputPath: filepath.Join(b.outDir, rel), Kind: KindAsset})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].InputPath < tasks[j].InputPath })
	return tasks, nil
}

// matches reports whether rel (slash-separated) is included and not excluded.
func (b *Builder) matches(rel string) (bool, error) {
	included := false
	for _, pattern := range b.include {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		if ok {
			included = true
			break
		}
	}
	if !included {
		return false, nil
	}

	for _, pattern := range b.exclude {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// isSkippedDir reports whether a directory inside the source tree holds
// build inputs or outputs that must not be treated as sources.
func (b *Builder) isSkippedDir(path string) bool {
	return path == b.outDir || path == b.layoutsDir || (b.assetsDir != "" && path == b.assetsDir)
}
