package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-mview/internal/debug"
	"github.com/grindlemire/go-mview/internal/mviewgen"
)

// fileResult is the outcome of processing one file.
type fileResult struct {
	input  string
	output string
	diags  *mviewgen.ErrorList
	err    error
}

// runGenerate implements the generate subcommand.
// It processes .mview files and writes the corresponding Go source files.
func runGenerate(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	defer debug.Close()
	return generateAll(context.Background(), opts, os.Stdout, os.Stderr)
}

func generateAll(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	paths := opts.paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectMviewFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .mview files found")
	}

	if opts.verbose {
		fmt.Fprintf(stdout, "Found %d .mview file(s)\n", len(files))
	}

	started := time.Now()
	results, err := processFiles(ctx, files, opts.jobs, func(inputPath string) fileResult {
		return generateFile(inputPath, opts)
	})
	if err != nil {
		return err
	}
	debug.Log("generate: %d files in %v", len(files), time.Since(started))

	return report(results, opts.verbose, stdout, stderr, func(r fileResult) string {
		return fmt.Sprintf("Generated %s -> %s", r.input, r.output)
	})
}

// processFiles runs fn over files with at most jobs running at once. Results
// come back in the order of files so output is stable.
func processFiles(ctx context.Context, files []string, jobs int, fn func(string) fileResult) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, inputPath := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = fn(inputPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// report prints the diagnostics of every file and counts failures.
func report(results []fileResult, verbose bool, stdout, stderr io.Writer, success func(fileResult) string) error {
	var errorCount int
	for _, r := range results {
		printDiagnostics(stderr, r.diags)
		if r.err != nil {
			if r.diags == nil || !r.diags.HasErrors() {
				fmt.Fprintf(stderr, "%s: %v\n", r.input, r.err)
			}
			errorCount++
			continue
		}
		if verbose {
			fmt.Fprintln(stdout, success(r))
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if verbose {
		fmt.Fprintf(stdout, "Successfully processed %d file(s)\n", len(results))
	}
	return nil
}

// diagnosticsOf returns the diagnostics behind a failed GenerateFile.
func diagnosticsOf(res *mviewgen.Result, err error) *mviewgen.ErrorList {
	if res != nil && res.Diagnostics != nil {
		return res.Diagnostics
	}
	var e *mviewgen.Error
	if errors.As(err, &e) {
		list := mviewgen.NewErrorList()
		list.Add(e)
		return list
	}
	return nil
}

// generateFile expands a .mview file and writes the corresponding Go file,
// plus its source map when requested.
func generateFile(inputPath string, opts *options) fileResult {
	r := fileResult{input: inputPath, output: mviewgen.OutputFileName(inputPath)}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		r.err = fmt.Errorf("reading file: %w", err)
		return r
	}

	res, err := mviewgen.GenerateFile(inputPath, source, opts.gen)
	if err != nil {
		r.err = err
		r.diags = diagnosticsOf(res, err)
		return r
	}
	r.diags = res.Diagnostics

	if err := os.WriteFile(r.output, res.Code, 0644); err != nil {
		r.err = fmt.Errorf("writing file: %w", err)
		return r
	}

	if opts.sourceMap {
		data, err := res.SourceMap.ToJSON()
		if err != nil {
			r.err = fmt.Errorf("encoding source map: %w", err)
			return r
		}
		if err := os.WriteFile(mviewgen.SourceMapFileName(r.output), data, 0644); err != nil {
			r.err = fmt.Errorf("writing source map: %w", err)
			return r
		}
	}
	return r
}
