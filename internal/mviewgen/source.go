package mviewgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	gotoken "go/token"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/module"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"

	"github.com/grindlemire/go-mview/internal/debug"
)

// DefaultRuntimeImport is the import path of the runtime builder API.
const DefaultRuntimeImport = "github.com/grindlemire/go-mview/view"

// Options controls how a .mview file is turned into Go.
type Options struct {
	Config Config

	// RuntimeImport is the import path of the view package. The event
	// package is expected at RuntimeImport + "/ev".
	RuntimeImport string

	// SkipImports uses go/format instead of imports.Process (faster for tests)
	SkipImports bool
}

// DefaultOptions returns the options used by mview generate.
func DefaultOptions() Options {
	return Options{
		Config:        DefaultConfig(),
		RuntimeImport: DefaultRuntimeImport,
	}
}

// Validate checks the runtime import path and package names.
func (o Options) Validate() error {
	if err := module.CheckImportPath(o.RuntimeImport); err != nil {
		return fmt.Errorf("invalid runtime import: %w", err)
	}
	if !gotoken.IsIdentifier(o.Config.ViewPkg) {
		return fmt.Errorf("invalid view package name %q", o.Config.ViewPkg)
	}
	if !gotoken.IsIdentifier(o.Config.EventPkg) {
		return fmt.Errorf("invalid event package name %q", o.Config.EventPkg)
	}
	return nil
}

// EventImport returns the import path of the event package.
func (o Options) EventImport() string {
	return o.RuntimeImport + "/ev"
}

// Result is the outcome of generating one file.
type Result struct {
	Code        []byte
	SourceMap   *SourceMap
	Diagnostics *ErrorList

	// Invocations is the number of top-level invocations in the file.
	Invocations int
}

// GenerateFile replaces every invocation in a .mview file with its
// expansion and returns the formatted Go file.
//
// When any invocation fails, the returned error is the Result's
// diagnostics and Code is nil. Warnings alone do not fail generation.
func GenerateFile(filename string, src []byte, opts Options) (*Result, error) {
	started := time.Now()
	text := string(src)
	fileStart := Span{File: filename, Line: 1, Column: 1}

	invs, serr := findInvocations(text)
	if serr != nil {
		return nil, NewError(advance(fileStart, text[:serr.Offset]), serr.Msg)
	}

	res := &Result{
		SourceMap:   NewSourceMap(filename),
		Invocations: len(invs),
	}
	diags := newDiagnostics()

	w := &fileWriter{}
	w.writeln("// Code generated by mview generate. DO NOT EDIT.")
	w.writeln("// Source: " + filepath.Base(filename))
	w.writeln("")

	var usesEvents, usesFmt bool
	last := 0
	for _, inv := range invs {
		w.write(text[last:inv.Start])
		last = inv.End

		at := advance(fileStart, text[:inv.Start])
		exp, err := expand(advance(fileStart, text[:inv.BodyStart]), text[inv.BodyStart:inv.BodyEnd], opts.Config, true)
		if exp == nil {
			diags.EmitError(err, at)
			continue
		}
		diags.List().Merge(exp.Diagnostics)
		usesEvents = usesEvents || exp.UsesEvents
		usesFmt = usesFmt || exp.UsesFmt

		res.SourceMap.AddMapping(SourceMapping{
			GoLine:  w.line,
			GoCol:   w.col,
			SrcLine: at.Line - 1,
			SrcCol:  at.Column - 1,
			Length:  len(exp.Code),
			Lines:   strings.Count(exp.Code, "\n") + 1,
		})
		w.write(exp.Code)
	}
	w.write(text[last:])

	res.Diagnostics = diags.List()
	if err := res.Diagnostics.Err(); err != nil {
		debug.Log("generate %s: %d errors", filename, len(res.Diagnostics.Errors()))
		return res, err
	}

	pre := w.buf.Bytes()
	code, err := addImports(filename, pre, opts, len(invs) > 0, usesEvents, usesFmt)
	if err != nil {
		return res, err
	}

	if !opts.SkipImports {
		code, err = imports.Process(filename, code, nil)
		if err != nil {
			return res, fmt.Errorf("formatting %s: %w", filename, err)
		}
	}

	// Only the import section changes size, so everything after it moves
	// by the same number of lines.
	preStart := firstLineAfterImports(pre)
	res.SourceMap.shiftFrom(preStart, firstLineAfterImports(code)-preStart)

	res.Code = code
	debug.Log("generate %s: %d invocations in %v", filename, len(invs), time.Since(started))
	return res, nil
}

// addImports adds the runtime imports the expansions refer to and formats
// the file.
func addImports(filename string, code []byte, opts Options, view, events, usesFmt bool) ([]byte, error) {
	fset := gotoken.NewFileSet()
	f, err := parser.ParseFile(fset, filename, code, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing generated code for %s: %w", filename, err)
	}

	if view {
		astutil.AddNamedImport(fset, f, importName(opts.Config.ViewPkg, opts.RuntimeImport), opts.RuntimeImport)
	}
	if events {
		astutil.AddNamedImport(fset, f, importName(opts.Config.EventPkg, opts.EventImport()), opts.EventImport())
	}
	if usesFmt {
		astutil.AddImport(fset, f, "fmt")
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}

// importName returns the name to import importPath under so that it is
// referred to as pkg, or "" when the default name already matches.
func importName(pkg, importPath string) string {
	if path.Base(importPath) == pkg {
		return ""
	}
	return pkg
}

// OutputFileName returns the generated file name for a .mview source:
// "page.mview" becomes "page_mview.go" and dashes in the base name become
// underscores.
func OutputFileName(src string) string {
	dir, base := filepath.Split(src)
	base = strings.TrimSuffix(base, ".mview")
	base = strings.ReplaceAll(base, "-", "_")
	return filepath.Join(dir, base+"_mview.go")
}

// fileWriter tracks the 0-indexed line and column of the next write.
type fileWriter struct {
	buf  bytes.Buffer
	line int
	col  int
}

func (w *fileWriter) write(s string) {
	w.buf.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.line += strings.Count(s, "\n")
		w.col = len(s) - i - 1
	} else {
		w.col += len(s)
	}
}

func (w *fileWriter) writeln(s string) {
	w.write(s + "\n")
}
