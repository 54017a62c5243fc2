// Package internal provides the Go-host driver for the fold and alias
// analysis.
//
// # Architecture
//
// This package serves as the bridge between the public analyzer and the
// block-local analysis machinery:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│   analyzer.go (public)                                            │
//	│        │                                                          │
//	│        ▼                                                          │
//	│   internal/analyzer.go   ◀── You are here                         │
//	│   ┌────────────────────────────────────────────────────────────┐ │
//	│   │  RunSSA()                                                  │ │
//	│   │    ├── Skip excluded files/functions                       │ │
//	│   │    ├── Lower each ssa.Function (internal/lower)            │ │
//	│   │    ├── Scan each block (internal/scan)                     │ │
//	│   │    ├── Trace matching functions (internal/report)          │ │
//	│   │    └── Report folds, apply ignore directives               │ │
//	│   └────────────────────────────────────────────────────────────┘ │
//	└──────────────────────────────────────────────────────────────────┘
package internal

import (
	"fmt"
	"go/token"
	"io"
	"regexp"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/simplemath/internal/directive"
	"github.com/mpyw/simplemath/internal/lower"
	"github.com/mpyw/simplemath/internal/report"
	"github.com/mpyw/simplemath/internal/scan"
)

var log = commonlog.GetLogger("simplemath.analyzer")

// Options carries per-package settings into RunSSA.
type Options struct {
	Scan        scan.Options
	TraceFilter string    // regexp over fn.String(); empty disables tracing
	Trace       io.Writer // trace sink, usually os.Stderr
}

// =============================================================================
// Entry Point
// =============================================================================

// RunSSA analyses all source functions of the package and reports folds.
//
// Processing flow for each function:
//  1. Skip if file is excluded (generated files)
//  2. Skip if the function or an enclosing function has //simplemath:ignore
//  3. Lower to IR and scan every block
//  4. Write the block trace if the function matches the trace filter
//  5. Report folds and faults (unless suppressed by line-level ignore)
//  6. Report unused ignore directives
func RunSSA(
	pass *analysis.Pass,
	ssaInfo *buildssa.SSA,
	ignoreMaps map[string]directive.IgnoreMap,
	funcIgnores map[string]map[token.Pos]directive.FunctionIgnoreEntry,
	skipFiles map[string]bool,
	opts Options,
) {
	var traceRegex *regexp.Regexp
	if opts.TraceFilter != "" {
		var err error
		traceRegex, err = regexp.Compile(opts.TraceFilter)
		if err != nil {
			// Report regex error but continue analysis without tracing
			pass.Reportf(token.NoPos, "invalid trace filter regex: %v", err)
			traceRegex = nil
		}
	}

	scanner := scan.New(opts.Scan)

	for _, fn := range ssaInfo.SrcFuncs {
		pos := fn.Pos()
		if !pos.IsValid() {
			continue
		}

		filename := pass.Fset.Position(pos).Filename
		if skipFiles[filename] {
			continue
		}

		ignoreMap := ignoreMaps[filename]

		if entry, ignored := functionIgnore(fn, funcIgnores[filename]); ignored {
			if ignoreMap != nil {
				ignoreMap.MarkUsed(entry.DirectiveLine)
			}
			continue
		}

		chk := &checker{
			fset:       pass.Fset,
			emit:       func(pos token.Pos, msg string) { pass.Reportf(pos, "%s", msg) },
			ignoreMap:  ignoreMap,
			scanner:    scanner,
			reported:   make(map[token.Pos]bool),
			traceRegex: traceRegex,
			trace:      opts.Trace,
		}
		chk.checkFunction(fn)
	}

	for _, ignoreMap := range ignoreMaps {
		if ignoreMap == nil {
			continue
		}
		for _, pos := range ignoreMap.GetUnusedIgnores() {
			pass.Reportf(pos, "unused simplemath:ignore directive")
		}
	}
}

// functionIgnore looks up fn and its enclosing functions, so closures inherit
// an ignore placed on their declaring function.
func functionIgnore(fn *ssa.Function, set map[token.Pos]directive.FunctionIgnoreEntry) (directive.FunctionIgnoreEntry, bool) {
	for f := fn; f != nil; f = f.Parent() {
		if entry, ok := set[f.Pos()]; ok {
			return entry, true
		}
	}
	return directive.FunctionIgnoreEntry{}, false
}

// =============================================================================
// Checker
// =============================================================================

// checker wraps the block scan with ignore directive handling.
type checker struct {
	fset       *token.FileSet
	emit       func(pos token.Pos, msg string)
	ignoreMap  directive.IgnoreMap
	scanner    *scan.Scanner
	reported   map[token.Pos]bool
	traceRegex *regexp.Regexp
	trace      io.Writer
}

// checkFunction scans every block of fn and reports what was found.
func (c *checker) checkFunction(fn *ssa.Function) {
	lowered := lower.Function(fn)
	results := c.scanner.ScanFunction(lowered)

	log.Debugf("scanned %s", lowered)

	if c.traceRegex != nil && c.trace != nil && c.traceRegex.MatchString(fn.String()) {
		fmt.Fprintf(c.trace, "\n=== Trace for %s ===\n", fn.String())
		if err := report.EmitAll(c.trace, results); err != nil {
			log.Warningf("%s: writing trace: %s", fn.String(), err.Error())
		}
	}

	for _, res := range results {
		for _, rec := range res.Folds {
			c.report(res.Block.At(rec.Ref).Pos, fmt.Sprintf("constant expression folds to %d", rec.Value))
		}
		for _, f := range res.Faults {
			c.report(res.Block.At(f.Ref).Pos, "integer division by zero in constant expression")
		}
	}
}

// report reports a diagnostic if not ignored or already reported.
func (c *checker) report(pos token.Pos, message string) {
	if !pos.IsValid() {
		return
	}
	if c.reported[pos] {
		return
	}
	c.reported[pos] = true

	line := c.fset.Position(pos).Line
	if c.ignoreMap != nil && c.ignoreMap.ShouldIgnore(line) {
		return
	}

	c.emit(pos, message)
}
