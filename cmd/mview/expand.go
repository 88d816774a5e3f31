package main

import (
	"fmt"
	"go/format"
	"io"
	"os"

	"github.com/grindlemire/go-mview/internal/debug"
	"github.com/grindlemire/go-mview/internal/mviewgen"
)

// runExpand implements the expand subcommand. It reads the body of one
// invocation from a file, or from stdin when no file or "-" is given, and
// prints the generated expression.
func runExpand(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	defer debug.Close()

	if len(opts.paths) > 1 {
		return fmt.Errorf("expand takes at most one file")
	}

	filename := "<stdin>"
	var source []byte
	if len(opts.paths) == 1 && opts.paths[0] != "-" {
		filename = opts.paths[0]
		source, err = os.ReadFile(filename)
	} else {
		source, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	exp, err := mviewgen.Expand(mviewgen.Span{File: filename, Line: 1, Column: 1}, string(source), opts.gen.Config)
	if exp != nil {
		printDiagnostics(stderr, exp.Diagnostics)
	}
	if err != nil {
		if exp == nil {
			return err
		}
		return fmt.Errorf("%d error(s)", len(exp.Diagnostics.Errors())-len(exp.Diagnostics.Warnings()))
	}

	code := mviewgen.RenderPretty(exp.Expr)
	if formatted, err := format.Source([]byte(code)); err == nil {
		code = string(formatted)
	}
	fmt.Fprintln(stdout, code)
	return nil
}
