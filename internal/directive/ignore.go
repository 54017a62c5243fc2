package directive

import (
	"go/ast"
	"go/token"
	"sort"
)

// fileLevel is the IgnoreMap key for a package-doc ignore.
const fileLevel = -1

// ignoreEntry tracks an ignore directive and whether it suppressed anything.
type ignoreEntry struct {
	pos  token.Pos // Position of the ignore comment
	used bool      // Whether this ignore was actually used to suppress a diagnostic
}

// IgnoreMap tracks line numbers that have ignore comments.
type IgnoreMap map[int]*ignoreEntry

// BuildIgnoreMap scans a file for ignore comments.
//
//	//simplemath:ignore        // Line 5 → map[5]
//	return a + b               // Line 6 → ignored (line 5 covers line 6)
//
//	// simplemath:ignore       // package doc → map[-1]
//	package p                  // every line ignored
//
// Keys are line numbers, or -1 for a file-level ignore. File-level entries
// count as used from the start.
func BuildIgnoreMap(fset *token.FileSet, file *ast.File) IgnoreMap {
	m := make(IgnoreMap)

	// Check for file-level ignore in doc comments
	if file.Doc != nil {
		for _, c := range file.Doc.List {
			if IsIgnoreDirective(c.Text) {
				// File-level ignores are always considered "used" (no warning for them)
				m[fileLevel] = &ignoreEntry{pos: c.Pos(), used: true}
			}
		}
	}

	for _, cg := range file.Comments {
		if cg == file.Doc {
			continue
		}
		for _, c := range cg.List {
			if IsIgnoreDirective(c.Text) {
				// Mark this line
				m[fset.Position(c.Pos()).Line] = &ignoreEntry{pos: c.Pos()}
			}
		}
	}

	return m
}

// ShouldIgnore reports whether a diagnostic on line is suppressed, either by
// a file-level ignore or by a directive on the same or the previous line.
// A matching entry is marked used.
func (m IgnoreMap) ShouldIgnore(line int) bool {
	// File-level ignore
	if entry, ok := m[fileLevel]; ok {
		entry.used = true
		return true
	}
	if entry, ok := m[line]; ok {
		entry.used = true
		return true
	}
	if entry, ok := m[line-1]; ok {
		entry.used = true
		return true
	}
	return false
}

// GetUnusedIgnores returns the positions of line-level directives that never
// suppressed a diagnostic, in source order.
func (m IgnoreMap) GetUnusedIgnores() []token.Pos {
	var unused []token.Pos
	for line, entry := range m {
		if line == fileLevel {
			// Skip file-level ignores
			continue
		}
		if !entry.used {
			unused = append(unused, entry.pos)
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i] < unused[j] })
	return unused
}

// MarkUsed marks the directive on line as used.
func (m IgnoreMap) MarkUsed(line int) {
	if entry, ok := m[line]; ok {
		entry.used = true
	}
}

// FunctionIgnoreEntry represents a function-level ignore directive.
type FunctionIgnoreEntry struct {
	DirectiveLine int // line of the directive, so it can be marked used
}

// BuildFunctionIgnoreSet returns the functions whose doc comment carries an
// ignore directive, keyed by Name.Pos() to match ssa.Function.Pos().
func BuildFunctionIgnoreSet(fset *token.FileSet, file *ast.File) map[token.Pos]FunctionIgnoreEntry {
	result := make(map[token.Pos]FunctionIgnoreEntry)

	for _, decl := range file.Decls {
		// Only handle FuncDecl - FuncLit (function literals) don't have doc comments in Go
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if IsIgnoreDirective(c.Text) {
				// Use Name.Pos() to match SSA's fn.Pos()
				result[fd.Name.Pos()] = FunctionIgnoreEntry{
					DirectiveLine: fset.Position(c.Pos()).Line,
				}
				break
			}
		}
	}

	return result
}
