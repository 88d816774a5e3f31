// Package main provides the CLI tool for mview! view markup.
//
// Usage:
//
//	mview generate [path...]   Generate Go code from .mview files
//	mview check [path...]      Check .mview files without generating
//	mview expand [file]        Expand a single invocation body
//	mview help                 Show help
//
// Examples:
//
//	mview generate ./...          Recursively compile all .mview files
//	mview generate ./pages        Process a specific directory
//	mview generate home.mview     Process a specific file
//	mview check home.mview        Check syntax without generating
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `mview - view markup compiler for Go

Usage:
  mview <command> [options] [path...]

Commands:
  generate    Generate Go code from .mview files
  check       Check .mview files without generating code
  expand      Print the expansion of one invocation body (stdin or file)
  version     Print version information
  help        Show this help message

Options:
  -v              Verbose output
  -runtime PATH   Import path of the view runtime
                  (default github.com/grindlemire/go-mview/view)
  -sourcemap      Write a .map file next to each generated file
  -j N            Number of files processed at once (default: number of CPUs)
  -debug PATH     Append debug logs to PATH (also MVIEW_DEBUG=PATH)

Examples:
  mview generate ./...              Recursively process all .mview files
  mview generate ./pages            Process files in a directory
  mview generate -v -j 4 ./...      Verbose output, four files at a time
  mview check home.mview            Check syntax without generating
  echo 'div { "hi" }' | mview expand
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := runGenerate(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "expand":
		if err := runExpand(args, os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("mview version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
