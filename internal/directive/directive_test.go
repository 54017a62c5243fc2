package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func TestIsIgnoreDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"exact match", "//simplemath:ignore", true},
		{"with space", "// simplemath:ignore", true},
		{"with extra spaces", "//  simplemath:ignore", true},
		{"with reason", "//simplemath:ignore // lookup table", true},
		{"other tool", "//nolint:ignore", false},
		{"random comment", "// some comment", false},
		{"empty", "//", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsIgnoreDirective(tt.text); got != tt.expected {
				t.Errorf("IsIgnoreDirective(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestIgnoreMapShouldIgnore(t *testing.T) {
	t.Parallel()

	t.Run("same line", func(t *testing.T) {
		t.Parallel()

		m := IgnoreMap{10: &ignoreEntry{pos: token.Pos(100)}}
		if !m.ShouldIgnore(10) {
			t.Error("ShouldIgnore(10) should return true (same line)")
		}
	})

	t.Run("next line", func(t *testing.T) {
		t.Parallel()

		m := IgnoreMap{10: &ignoreEntry{pos: token.Pos(100)}}
		if !m.ShouldIgnore(11) {
			t.Error("ShouldIgnore(11) should return true (previous line has directive)")
		}
	})

	t.Run("unrelated line", func(t *testing.T) {
		t.Parallel()

		m := IgnoreMap{10: &ignoreEntry{pos: token.Pos(100)}}
		if m.ShouldIgnore(12) {
			t.Error("ShouldIgnore(12) should return false")
		}
	})

	t.Run("file level", func(t *testing.T) {
		t.Parallel()

		m := IgnoreMap{fileLevel: &ignoreEntry{pos: token.Pos(1), used: true}}
		if !m.ShouldIgnore(100) {
			t.Error("file-level ignore should cover every line")
		}
	})
}

func TestIgnoreMapGetUnusedIgnores(t *testing.T) {
	t.Parallel()

	m := IgnoreMap{
		20:        &ignoreEntry{pos: token.Pos(200)},
		10:        &ignoreEntry{pos: token.Pos(100)},
		30:        &ignoreEntry{pos: token.Pos(300)},
		fileLevel: &ignoreEntry{pos: token.Pos(1), used: true},
	}
	m.ShouldIgnore(20)

	unused := m.GetUnusedIgnores()
	if len(unused) != 2 {
		t.Fatalf("expected 2 unused ignores, got %d", len(unused))
	}
	if unused[0] != token.Pos(100) || unused[1] != token.Pos(300) {
		t.Errorf("unused = %v, want [100 300]", unused)
	}
}

func TestIgnoreMapMarkUsed(t *testing.T) {
	t.Parallel()

	m := IgnoreMap{10: &ignoreEntry{pos: token.Pos(100)}}
	m.MarkUsed(10)
	m.MarkUsed(999) // absent line is a no-op

	if unused := m.GetUnusedIgnores(); len(unused) != 0 {
		t.Errorf("unused = %v, want none", unused)
	}
}

func TestBuildIgnoreMap(t *testing.T) {
	t.Parallel()

	src := `package test

func f() int {
	a, b := 1, 2
	//simplemath:ignore
	return a + b
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := BuildIgnoreMap(fset, file)
	if _, ok := m[5]; !ok {
		t.Fatalf("expected directive on line 5, got %v", m)
	}
	if !m.ShouldIgnore(6) {
		t.Error("line 6 should be ignored")
	}
	if m.ShouldIgnore(4) {
		t.Error("line 4 should not be ignored")
	}
}

func TestBuildIgnoreMapFileLevel(t *testing.T) {
	t.Parallel()

	src := `// simplemath:ignore
// Package test is a test package.
package test

func foo() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := BuildIgnoreMap(fset, file)
	if !m.ShouldIgnore(5) {
		t.Error("file-level ignore should cover line 5")
	}
	if unused := m.GetUnusedIgnores(); len(unused) != 0 {
		t.Errorf("file-level directive must not be reported unused: %v", unused)
	}
}

func TestBuildFunctionIgnoreSet(t *testing.T) {
	t.Parallel()

	src := `package test

// simplemath:ignore
func ignored() {}

func notIgnored() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	set := BuildFunctionIgnoreSet(fset, file)
	if len(set) != 1 {
		t.Fatalf("Expected 1 ignored function, got %d", len(set))
	}
	for _, entry := range set {
		if entry.DirectiveLine != 3 {
			t.Errorf("DirectiveLine = %d, want 3", entry.DirectiveLine)
		}
	}
}

func TestBuildFunctionIgnoreSetKeysAndLiterals(t *testing.T) {
	t.Parallel()

	src := `package test

// simplemath:ignore
func ignored() {}

var f = func() {
	// simplemath:ignore
	_ = func() {}
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	set := BuildFunctionIgnoreSet(fset, file)
	if len(set) != 1 {
		t.Fatalf("Expected only the declared function, got %d entries", len(set))
	}

	fd := file.Decls[0].(*ast.FuncDecl)
	if _, ok := set[fd.Name.Pos()]; !ok {
		t.Errorf("entry should be keyed by the function name position %d", fd.Name.Pos())
	}
	if _, ok := set[fd.Pos()]; ok {
		t.Error("entry must not be keyed by the func keyword position")
	}
}
