package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/grindlemire/go-mview/internal/mviewgen"
)

const samplePage = `package pages

func Home(title string) view.View {
	return mview! {
		div.page {
			h1 { {title} }
			p class="lead" { "welcome" }
		}
	}
}
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestParseArgs(t *testing.T) {
	type tc struct {
		args    []string
		wantErr bool
		check   func(t *testing.T, opts *options)
	}

	tests := map[string]tc{
		"defaults": {
			args: nil,
			check: func(t *testing.T, opts *options) {
				if opts.verbose || opts.sourceMap || opts.jobs < 1 || len(opts.paths) != 0 {
					t.Errorf("opts = %+v", opts)
				}
				if opts.gen.RuntimeImport != mviewgen.DefaultRuntimeImport {
					t.Errorf("RuntimeImport = %q", opts.gen.RuntimeImport)
				}
			},
		},
		"flags between paths": {
			args: []string{"a.mview", "-v", "-j", "3", "b", "-sourcemap"},
			check: func(t *testing.T, opts *options) {
				if !opts.verbose || !opts.sourceMap || opts.jobs != 3 {
					t.Errorf("opts = %+v", opts)
				}
				if !slices.Equal(opts.paths, []string{"a.mview", "b"}) {
					t.Errorf("paths = %v", opts.paths)
				}
			},
		},
		"runtime": {
			args: []string{"-runtime", "example.com/rt/view"},
			check: func(t *testing.T, opts *options) {
				if opts.gen.RuntimeImport != "example.com/rt/view" {
					t.Errorf("RuntimeImport = %q", opts.gen.RuntimeImport)
				}
			},
		},
		"stdin marker is a path": {
			args: []string{"-"},
			check: func(t *testing.T, opts *options) {
				if !slices.Equal(opts.paths, []string{"-"}) {
					t.Errorf("paths = %v", opts.paths)
				}
			},
		},
		"invalid runtime":   {args: []string{"-runtime", "not a path!"}, wantErr: true},
		"missing value":     {args: []string{"-j"}, wantErr: true},
		"zero jobs":         {args: []string{"-j", "0"}, wantErr: true},
		"non-numeric jobs":  {args: []string{"-j", "many"}, wantErr: true},
		"unknown flag":      {args: []string{"-x"}, wantErr: true},
		"unknown long flag": {args: []string{"--force"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestCollectMviewFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.mview":               "",
		"b.go":                  "",
		"sub/c.mview":           "",
		"sub/deeper/d.mview":    "",
		"testdata/skip.mview":   "",
		"vendor/x/skip.mview":   "",
		".hidden/skip.mview":    "",
		"_scratch/skip.mview":   "",
		"sub/not-mview.txt":     "",
		"sub/deeper/e.mview.go": "",
	})

	type tc struct {
		paths    []string
		expected []string
	}

	tests := map[string]tc{
		"recursive": {
			paths:    []string{root + "/..."},
			expected: []string{"a.mview", "sub/c.mview", "sub/deeper/d.mview"},
		},
		"directory": {
			paths:    []string{filepath.Join(root, "sub")},
			expected: []string{"sub/c.mview"},
		},
		"file": {
			paths:    []string{filepath.Join(root, "a.mview")},
			expected: []string{"a.mview"},
		},
		"non-mview file": {
			paths: []string{filepath.Join(root, "b.go")},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			files, err := collectMviewFiles(tt.paths)
			if err != nil {
				t.Fatalf("collectMviewFiles failed: %v", err)
			}
			var got []string
			for _, f := range files {
				rel, err := filepath.Rel(root, f)
				if err != nil {
					t.Fatalf("Rel: %v", err)
				}
				got = append(got, filepath.ToSlash(rel))
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("files = %v, want %v", got, tt.expected)
			}
		})
	}

	if _, err := collectMviewFiles([]string{filepath.Join(root, "missing")}); err == nil {
		t.Errorf("missing path did not fail")
	}
}

func TestGenerateAll(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"home.mview":          samplePage,
		"sub/about-us.mview":  strings.ReplaceAll(samplePage, "Home", "About"),
		"sub/ignored.go.orig": "",
	})

	opts, err := parseArgs([]string{"-v", "-sourcemap", "-j", "2", root + "/..."})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := generateAll(context.Background(), opts, &stdout, &stderr); err != nil {
		t.Fatalf("generateAll failed: %v\n%s", err, stderr.String())
	}

	for _, name := range []string{"home_mview.go", "sub/about_us_mview.go"} {
		code, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		for _, want := range []string{
			"// Code generated by mview generate. DO NOT EDIT.",
			`"github.com/grindlemire/go-mview/view"`,
			`view.HTML("h1")`,
		} {
			if !bytes.Contains(code, []byte(want)) {
				t.Errorf("%s: missing %q", name, want)
			}
		}

		data, err := os.ReadFile(filepath.Join(root, mviewgen.SourceMapFileName(name)))
		if err != nil {
			t.Fatalf("reading source map for %s: %v", name, err)
		}
		sm, err := mviewgen.ParseSourceMap(data)
		if err != nil || len(sm.Mappings) != 1 || sm.Mappings[0].SrcLine != 3 {
			t.Errorf("%s: source map = %+v, err %v", name, sm, err)
		}
	}

	if !strings.Contains(stdout.String(), "Found 2 .mview file(s)") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestGenerateAll_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"good.mview": samplePage,
		"bad.mview":  "package pages\n\nvar V = mview! { div bogus:x; }\n",
	})

	opts, err := parseArgs([]string{root})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err = generateAll(context.Background(), opts, &stdout, &stderr)
	if err == nil || err.Error() != "1 file(s) had errors" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr.String(), "bad.mview:3:22: error: unknown directive `bogus:`") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(root, "good_mview.go")); err != nil {
		t.Errorf("good file was not generated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "bad_mview.go")); err == nil {
		t.Errorf("bad file was generated")
	}
}

func TestGenerateAll_NoFiles(t *testing.T) {
	opts, err := parseArgs([]string{t.TempDir()})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if err := generateAll(context.Background(), opts, &stdout, &stderr); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCheckAll(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"good.mview": samplePage,
		"warn.mview": "package pages\n\nvar V = mview! { dvi; }\n",
	})

	opts, err := parseArgs([]string{"-v", root})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := checkAll(context.Background(), opts, &stdout, &stderr); err != nil {
		t.Fatalf("checkAll failed: %v\n%s", err, stderr.String())
	}
	if !strings.Contains(stderr.String(), "warning: unknown HTML element <dvi>") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if strings.Count(stdout.String(), ": ok") != 2 {
		t.Errorf("stdout = %q", stdout.String())
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("check wrote files: %d entries", len(entries))
	}
}

func TestRunExpand(t *testing.T) {
	type tc struct {
		input    string
		expected string
		wantErr  bool
	}

	tests := map[string]tc{
		"element": {
			input:    `p { "hi" }`,
			expected: `view.HTML("p").Child("hi").Build()`,
		},
		"fatal": {
			input:   `p bogus:x;`,
			wantErr: true,
		},
		"non-fatal": {
			input:   `p title=;`,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runExpand(nil, strings.NewReader(tt.input), &stdout, &stderr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runExpand error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := strings.TrimSpace(stdout.String()); got != tt.expected {
				t.Errorf("output = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRunExpand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	if err := os.WriteFile(path, []byte(`button on:click={h};`), 0644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if err := runExpand([]string{path}, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("runExpand failed: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != `view.HTML("button").On(ev.Click, h).Build()` {
		t.Errorf("output = %q", got)
	}
}
