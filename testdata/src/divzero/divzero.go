// Package divzero is analyzed with division-by-zero = "report".
package divzero

func divByZero() int {
	a, b := 1, 0
	return a / b // want `integer division by zero in constant expression`
}

func stillFolds() int {
	a, b := 9, 3
	return a / b // want `constant expression folds to 3`
}

//simplemath:ignore
func ignoredDivByZero() int {
	a, b := 1, 0
	return a / b
}
