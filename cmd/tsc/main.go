// Command tsc is the CLI entry point: it discovers source files, runs
// internal/checker over each one, and reports the accumulated
// diagnostics either as colorized text or as JSON.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/tsgo-core/internal/checker"
	"github.com/funvibe/tsgo-core/internal/config"
	"github.com/funvibe/tsgo-core/internal/diag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts := parseArgs(args)

	if opts.showHelp {
		printUsage(os.Stdout)
		return 0
	}
	if opts.showVersion {
		fmt.Println(config.Version)
		return 0
	}

	if len(opts.paths) == 0 {
		opts.paths = []string{"."}
	}
	files, err := discoverFiles(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsc: %s\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "tsc: no input files")
		return 1
	}
	sort.Strings(files)

	base, err := baseOptions(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsc: %s\n", err)
		return 1
	}

	start := time.Now()
	var allDiags []diag.Diagnostic
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tsc: reading %s: %s\n", file, err)
			return 1
		}
		c := checker.New(file, string(src), base)
		sink := c.Check()
		allDiags = append(allDiags, sink.Diagnostics()...)
	}
	elapsed := time.Since(start)

	if opts.jsonOutput {
		data, err := diag.MarshalJSON(allDiags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tsc: encoding diagnostics: %s\n", err)
			return 1
		}
		os.Stdout.Write(data)
		fmt.Println()
	} else {
		printDiagnostics(os.Stdout, allDiags, isatty.IsTerminal(os.Stdout.Fd()))
		printSummary(os.Stdout, files, allDiags, elapsed)
	}

	if hasErrorDiagnostic(allDiags) {
		return 1
	}
	return 0
}

func hasErrorDiagnostic(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Category == diag.CategoryError {
			return true
		}
	}
	return false
}

type cliOptions struct {
	paths       []string
	projectPath string
	jsonOutput  bool
	showVersion bool
	showHelp    bool
}

func parseArgs(args []string) cliOptions {
	var opts cliOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--version", "-v":
			opts.showVersion = true
		case "--help", "-h":
			opts.showHelp = true
		case "--json":
			opts.jsonOutput = true
		case "--project", "-p":
			if i+1 < len(args) {
				opts.projectPath = args[i+1]
				i++
			}
		default:
			if !strings.HasPrefix(arg, "-") {
				opts.paths = append(opts.paths, arg)
			}
		}
	}
	return opts
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: tsc [options] <file | directory>...")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -p, --project <path>  Use this tsgo.yaml project file")
	fmt.Fprintln(w, "      --json            Emit diagnostics as JSON instead of text")
	fmt.Fprintln(w, "  -v, --version         Print the version and exit")
	fmt.Fprintln(w, "  -h, --help            Print this message and exit")
}

// baseOptions resolves the project-wide Options a per-file pragma scan
// then layers on top of: an explicit --project file, or tsgo.yaml found
// by walking up from the current directory.
func baseOptions(opts cliOptions) (config.Options, error) {
	projectPath := opts.projectPath
	if projectPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Options{}, fmt.Errorf("resolving working directory: %w", err)
		}
		found, err := config.FindProject(cwd)
		if err != nil {
			return config.Options{}, err
		}
		projectPath = found
	}
	if projectPath == "" {
		return config.Default(), nil
	}
	project, err := config.LoadProject(projectPath)
	if err != nil {
		return config.Options{}, err
	}
	return project.BaseOptions(), nil
}

// discoverFiles expands opts.paths (files and directories) into a flat
// list of recognized source files.
func discoverFiles(opts cliOptions) ([]string, error) {
	var files []string
	for _, path := range opts.paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if fi.Name() == "node_modules" && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if config.HasSourceExt(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
