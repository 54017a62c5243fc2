// Package simplemath provides a static analysis tool that finds integer
// arithmetic whose operands are both compile-time literals after SSA
// construction.
//
// The analysis runs once per basic block. It records each foldable
// instruction with its computed value and maintains a slot alias table
// driven by back-reference operand names. It never rewrites code.
package simplemath

import (
	"go/ast"
	"go/token"
	"os"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"github.com/mpyw/simplemath/internal"
	"github.com/mpyw/simplemath/internal/config"
	"github.com/mpyw/simplemath/internal/directive"
)

var (
	configPath  string
	traceFilter string
)

// Analyzer is the main analyzer for simplemath.
var Analyzer = &analysis.Analyzer{
	Name:     "simplemath",
	Doc:      "reports integer arithmetic on literal operands that can be folded to a constant",
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
	Run:      run,
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to a simplemath.toml configuration file")
	Analyzer.Flags.StringVar(&traceFilter, "trace", "", "regexp of functions whose block trace is written to stderr")
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignoreMaps := make(map[string]directive.IgnoreMap)
	funcIgnores := make(map[string]map[token.Pos]directive.FunctionIgnoreEntry)
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = directive.BuildIgnoreMap(pass.Fset, file)
		funcIgnores[filename] = directive.BuildFunctionIgnoreSet(pass.Fset, file)
	}

	internal.RunSSA(pass, ssaInfo, ignoreMaps, funcIgnores, skipFiles, internal.Options{
		Scan:        cfg.ScanOptions(),
		TraceFilter: traceFilter,
		Trace:       os.Stderr,
	})

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}
