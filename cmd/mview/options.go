package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/grindlemire/go-mview/internal/debug"
	"github.com/grindlemire/go-mview/internal/mviewgen"
)

// options holds the flags shared by the subcommands.
type options struct {
	verbose   bool
	sourceMap bool
	jobs      int
	debugPath string
	gen       mviewgen.Options
	paths     []string
}

// parseArgs reads flags and paths. Flags may appear anywhere among the paths.
func parseArgs(args []string) (*options, error) {
	opts := &options{
		jobs: runtime.NumCPU(),
		gen:  mviewgen.DefaultOptions(),
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		switch arg {
		case "-v", "--verbose":
			opts.verbose = true
		case "-sourcemap", "--sourcemap":
			opts.sourceMap = true
		case "-runtime", "--runtime":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.gen.RuntimeImport = v
		case "-j":
			v, err := value()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("-j must be a positive number, got %q", v)
			}
			opts.jobs = n
		case "-debug", "--debug":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.debugPath = v
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			opts.paths = append(opts.paths, arg)
		}
	}

	if err := opts.gen.Validate(); err != nil {
		return nil, err
	}
	if opts.debugPath != "" {
		if err := debug.Init(opts.debugPath); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// collectMviewFiles finds all .mview files from the given paths.
// Supports:
//   - Direct file paths: "home.mview"
//   - Directory paths: "./pages"
//   - Recursive pattern: "./..."
func collectMviewFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") || path == "..." {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && p != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				if !d.IsDir() && strings.HasSuffix(p, ".mview") {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			// Collect all .mview files in directory (non-recursive)
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mview") {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, ".mview") {
			files = append(files, path)
		}
	}

	return files, nil
}

// skipDir reports whether a directory is ignored by ./... the way the go
// tool ignores it.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// printDiagnostics writes every diagnostic on its own line.
func printDiagnostics(w io.Writer, list *mviewgen.ErrorList) {
	if list == nil {
		return
	}
	for _, e := range list.Errors() {
		fmt.Fprintln(w, e.Error())
	}
}
