package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-nbsite"
	"github.com/alnah/go-nbsite/internal/assets"
	"github.com/alnah/go-nbsite/internal/config"
	"github.com/alnah/go-nbsite/internal/fileutil"
	"github.com/alnah/go-nbsite/internal/pipeline"
)

// NotebookConverter renders a notebook file into a complete page.
type NotebookConverter interface {
	ConvertFile(ctx context.Context, path string) (*nbsite.Result, error)
}

// Compile-time interface implementation check.
var _ NotebookConverter = (*nbsite.Converter)(nil)

// Config describes the directories and filters of a build.
type Config struct {
	SrcDir     string
	LayoutsDir string
	OutDir     string
	AssetsDir  string   // Empty = no assets
	Include    []string // Globs relative to SrcDir (empty = pages and notebooks)
	Exclude    []string
	Workers    int // 0 = auto
}

// BuildResult holds the outcome of building a single file.
type BuildResult struct {
	InputPath  string
	OutputPath string
	Kind       Kind
	Err        error
	Duration   time.Duration
}

// Summary holds the count of succeeded and failed files.
type Summary struct {
	Succeeded int
	Failed    int
}

// Builder builds a site. It is safe to call Build more than once.
type Builder struct {
	srcDir     string
	layoutsDir string
	outDir     string
	assetsDir  string
	include    []string
	exclude    []string
	workers    int
	layouts    *assets.LayoutLoader // nil when the layouts directory is missing
	converter  NotebookConverter
}

// NewBuilder validates cfg and returns a Builder rendering notebooks with
// converter. A missing layouts directory is not an error here; pages that
// need a layout then fail individually.
func NewBuilder(cfg Config, converter NotebookConverter) (*Builder, error) {
	if converter == nil {
		return nil, ErrNoConverter
	}

	srcDir, err := filepath.Abs(cfg.SrcDir)
	if err != nil || !fileutil.DirExists(srcDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceDir, cfg.SrcDir)
	}
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	if outDir == srcDir {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, cfg.OutDir)
	}
	layoutsDir, err := filepath.Abs(cfg.LayoutsDir)
	if err != nil {
		return nil, fmt.Errorf("resolving layouts directory: %w", err)
	}

	b := &Builder{
		srcDir:     srcDir,
		layoutsDir: layoutsDir,
		outDir:     outDir,
		include:    cfg.Include,
		exclude:    cfg.Exclude,
		workers:    nbsite.ResolveWorkers(cfg.Workers),
		converter:  converter,
	}
	if len(b.include) == 0 {
		b.include = config.DefaultInclude
	}
	for _, pattern := range append(append([]string(nil), b.include...), b.exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	if cfg.AssetsDir != "" {
		assetsDir, err := filepath.Abs(cfg.AssetsDir)
		if err != nil || !fileutil.DirExists(assetsDir) {
			return nil, fmt.Errorf("%w: %s", ErrAssetsDir, cfg.AssetsDir)
		}
		if assetsDir == outDir {
			return nil, fmt.Errorf("%w: %s", ErrOutputDir, cfg.OutDir)
		}
		b.assetsDir = assetsDir
	}

	if fileutil.DirExists(layoutsDir) {
		loader, err := assets.NewLayoutLoader(layoutsDir)
		if err != nil {
			return nil, err
		}
		b.layouts = loader
	}

	return b, nil
}

// Workers returns the number of files built in parallel.
func (b *Builder) Workers() int {
	return b.workers
}

// Layouts lists the available layouts, for error hints.
func (b *Builder) Layouts() []string {
	if b.layouts == nil {
		return nil
	}
	names, err := b.layouts.ListLayouts()
	if err != nil {
		return nil
	}
	return names
}

// Build processes tasks concurrently and returns one result per task, in
// task order. Failures are recorded per file; once ctx is cancelled the
// remaining files fail with the context error.
func (b *Builder) Build(ctx context.Context, tasks []Task) []BuildResult {
	if len(tasks) == 0 {
		return nil
	}

	results := make([]BuildResult, len(tasks))
	conflicts := outputConflicts(tasks)

	var g errgroup.Group
	g.SetLimit(min(b.workers, len(tasks)))

	for i, task := range tasks {
		if err, ok := conflicts[i]; ok {
			results[i] = BuildResult{InputPath: task.InputPath, Kind: task.Kind, Err: err}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BuildResult{InputPath: task.InputPath, Kind: task.Kind, Err: err}
				return nil
			}
			results[i] = b.buildFile(ctx, task)
			return nil
		})
	}

	_ = g.Wait() // workers record errors in results
	return results
}

// buildFile processes a single file and returns the result.
func (b *Builder) buildFile(ctx context.Context, task Task) BuildResult {
	start := time.Now()
	result := BuildResult{
		InputPath:  task.InputPath,
		OutputPath: task.OutputPath,
		Kind:       task.Kind,
	}

	switch task.Kind {
	case KindPage:
		result.Err = b.buildPage(task)
	case KindNotebook:
		result.Err = b.buildNotebook(ctx, task)
	default:
		if err := fileutil.CopyFile(task.InputPath, task.OutputPath); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrCopyAsset, err)
		}
	}

	if result.Err != nil {
		result.OutputPath = ""
	}
	result.Duration = time.Since(start)
	return result
}

// buildPage stitches a page into its layout.
func (b *Builder) buildPage(task Task) error {
	content, err := os.ReadFile(task.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadPage, err)
	}

	var layouts pipeline.LayoutSource = missingLayouts{dir: b.layoutsDir}
	if b.layouts != nil {
		layouts = b.layouts
	}

	page, err := pipeline.StitchPage(string(content), layouts)
	if err != nil {
		return err
	}
	return writeOutput(task.OutputPath, []byte(page))
}

// buildNotebook renders a notebook into a page.
func (b *Builder) buildNotebook(ctx context.Context, task Task) error {
	result, err := b.converter.ConvertFile(ctx, task.InputPath)
	if err != nil {
		return err
	}
	return writeOutput(task.OutputPath, result.HTML)
}

func writeOutput(path string, content []byte) error {
	if err := fileutil.WriteFileAtomic(path, content); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// outputConflicts maps the index of every task whose output path was
// already claimed by an earlier task to its error.
func outputConflicts(tasks []Task) map[int]error {
	claimed := make(map[string]string, len(tasks))
	conflicts := make(map[int]error)
	for i, task := range tasks {
		if first, ok := claimed[task.OutputPath]; ok {
			conflicts[i] = fmt.Errorf("%w: %s (from %s)", ErrOutputConflict, task.OutputPath, first)
			continue
		}
		claimed[task.OutputPath] = task.InputPath
	}
	return conflicts
}

// missingLayouts stands in for a layouts directory that does not exist.
type missingLayouts struct {
	dir string
}

func (m missingLayouts) LoadLayout(name string) (string, error) {
	return "", fmt.Errorf("%w: %q (layouts directory %s does not exist)", assets.ErrLayoutNotFound, name, m.dir)
}

// Summarize tallies succeeded and failed files.
func Summarize(results []BuildResult) Summary {
	var summary Summary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}
