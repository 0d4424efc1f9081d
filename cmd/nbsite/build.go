package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-nbsite"
	"github.com/alnah/go-nbsite/internal/hints"
	"github.com/alnah/go-nbsite/internal/site"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input specified")
	ErrBuildFailed = errors.New("build failed")
	ErrWriteOutput = errors.New("failed to write output file")
)

// runBuild builds the site described by config, environment and flags.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	mergeSiteFlags(&f.site, f.changed, cfg)
	mergeNotebookFlags(&f.notebook, f.changed, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	builder, err := site.NewBuilder(site.Config{
		SrcDir:     cfg.Site.SrcDir,
		LayoutsDir: cfg.Site.LayoutsDir,
		OutDir:     cfg.Site.OutDir,
		AssetsDir:  cfg.Site.AssetsDir,
		Include:    cfg.Site.Include,
		Exclude:    cfg.Site.Exclude,
		Workers:    cfg.Build.Workers,
	}, conv)
	if err != nil {
		if errors.Is(err, site.ErrSourceDir) {
			return fmt.Errorf("%w%s", err, hints.ForSourceDirectory(cfg.Site.SrcDir))
		}
		return err
	}

	tasks, err := builder.Discover()
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", builder.Workers())
		for _, task := range tasks {
			fmt.Fprintf(env.Stderr, "Found %s (%s)\n", task.InputPath, task.Kind)
		}
	}
	if len(tasks) == 0 {
		if !f.common.quiet {
			fmt.Fprintf(env.Stdout, "No files to build in %s\n", cfg.Site.SrcDir)
		}
		return nil
	}

	start := time.Now()
	results := builder.Build(ctx, tasks)
	failed := printResults(results, f.common.quiet, f.common.verbose, env, builder.Layouts)
	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "Build took %v\n", time.Since(start).Round(time.Millisecond))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", ErrBuildFailed, failed, len(results))
	}
	return nil
}

// printResults outputs build results using the environment's writers and
// returns the number of failed files. layouts is called at most once, for
// the hint of the first missing layout.
func printResults(results []site.BuildResult, quiet, verbose bool, env *Environment, layouts func() []string) int {
	summary := site.Summarize(results)

	var available []string
	listed := false
	for _, r := range results {
		if r.Err != nil {
			if errors.Is(r.Err, nbsite.ErrLayoutNotFound) && !listed {
				available, listed = layouts(), true
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, available))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet || summary.Failed > 0 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// hintFor returns the hint matching a per-file error, or "".
func hintFor(err error, layouts []string) string {
	switch {
	case errors.Is(err, nbsite.ErrLayoutNotFound):
		return hints.ForLayoutNotFound(layouts)
	case errors.Is(err, nbsite.ErrTemplateMarkerMissing):
		return hints.ForTemplateMarker()
	case errors.Is(err, nbsite.ErrShellMarkerMissing):
		return hints.ForContentMarker()
	case errors.Is(err, nbsite.ErrInvalidNotebook):
		return hints.ForInvalidNotebook()
	case errors.Is(err, site.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
