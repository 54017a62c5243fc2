// Package filefilter tests file filtering functionality.
// Generated files are always skipped (see generated.go).
package filefilter

func folded() int {
	a, b := 2, 3
	return a + b // want `constant expression folds to 5`
}
