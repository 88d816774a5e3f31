package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/grindlemire/go-mview/internal/debug"
	"github.com/grindlemire/go-mview/internal/mviewgen"
)

// runCheck implements the check subcommand.
// It expands .mview files without writing anything, which is useful for
// syntax checking and editor integration.
func runCheck(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	defer debug.Close()
	return checkAll(context.Background(), opts, os.Stdout, os.Stderr)
}

func checkAll(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
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
		fmt.Fprintf(stdout, "Checking %d .mview file(s)\n", len(files))
	}

	// Formatting is skipped: check only reports diagnostics.
	gen := opts.gen
	gen.SkipImports = true

	results, err := processFiles(ctx, files, opts.jobs, func(inputPath string) fileResult {
		return checkFile(inputPath, gen)
	})
	if err != nil {
		return err
	}

	return report(results, opts.verbose, stdout, stderr, func(r fileResult) string {
		return fmt.Sprintf("%s: ok", r.input)
	})
}

// checkFile expands a single .mview file and discards the output.
func checkFile(inputPath string, gen mviewgen.Options) fileResult {
	r := fileResult{input: inputPath}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		r.err = fmt.Errorf("reading file: %w", err)
		return r
	}

	res, err := mviewgen.GenerateFile(inputPath, source, gen)
	if err != nil {
		r.err = err
		r.diags = diagnosticsOf(res, err)
		return r
	}
	r.diags = res.Diagnostics
	return r
}
