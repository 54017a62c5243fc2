package simplemath

func ignoredSameLine() int {
	a, b := 2, 3
	return a + b //simplemath:ignore
}

func ignoredPreviousLine() int {
	a, b := 2, 3
	//simplemath:ignore
	return a + b
}

// ignoredFunction is a lookup value kept in expanded form.
//
//simplemath:ignore
func ignoredFunction() int {
	a, b := 6, 7
	return a * b
}

//simplemath:ignore
func ignoredWithClosure() func() int {
	return func() int {
		a, b := 6, 7
		return a * b
	}
}

func unusedIgnore(a, b int) int {
	//simplemath:ignore // want `unused simplemath:ignore directive`
	return a + b
}

// notIgnored has a directive too far from the fold to cover it.
func notIgnored() int {
	//simplemath:ignore // want `unused simplemath:ignore directive`
	a, b := 2, 3

	return a - b // want `constant expression folds to -1`
}
