package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-nbsite"
	"github.com/alnah/go-nbsite/internal/fileutil"
	"github.com/alnah/go-nbsite/internal/hints"
)

// runRender converts a single notebook into a standalone page.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: notebook path required", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[1])
	}
	inputPath := positional[0]

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	mergeNotebookFlags(&f.notebook, f.changed, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	outputPath := f.output
	if outputPath == "" {
		outputPath, err = fileutil.ReplaceExt(inputPath, "html")
		if err != nil {
			return err
		}
	}
	if outputPath == inputPath {
		return fmt.Errorf("%w: output would overwrite %s", ErrUsage, inputPath)
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := conv.ConvertFile(ctx, inputPath)
	if err != nil {
		if errors.Is(err, nbsite.ErrInvalidNotebook) {
			return fmt.Errorf("%w%s", err, hints.ForInvalidNotebook())
		}
		return err
	}

	if err := fileutil.WriteFileAtomic(outputPath, result.HTML); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	if f.common.verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", inputPath, outputPath, time.Since(start).Round(time.Millisecond))
	} else if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	}
	return nil
}
