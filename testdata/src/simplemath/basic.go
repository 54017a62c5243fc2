// Package simplemath exercises integer folding on literal operands.
package simplemath

// ===== SHOULD REPORT =====

func add() int {
	a := 2
	b := 3
	return a + b // want `constant expression folds to 5`
}

func sub() int {
	a, b := 5, 2
	return a - b // want `constant expression folds to 3`
}

func mul() int {
	a, b := -6, 4
	return a * b // want `constant expression folds to -24`
}

func div() int {
	a, b := -7, 2
	return a / b // want `constant expression folds to -3`
}

// narrow reports the exact sum, not the int8 result.
func narrow() int8 {
	var a, b int8 = 100, 100
	return a + b // want `constant expression folds to 200`
}

func wide() int32 {
	var a, b int32 = 1 << 30, 4
	return a * b // want `constant expression folds to 4294967296`
}

// overflowing has no exact int64 value.
func overflowing() int64 {
	var a, b int64 = 1 << 62, 4
	return a * b
}

// chain folds only the first step. The second operand of b * 4 is an SSA
// value, not a literal, so it is left alone.
func chain() int {
	a := 2
	b := a + 3 // want `constant expression folds to 5`
	return b * 4
}

func closure() func() int {
	return func() int {
		a, b := 4, 5
		return a * b // want `constant expression folds to 20`
	}
}

// ===== SHOULD NOT REPORT =====

// typeChecked is folded by the type checker before SSA construction.
func typeChecked() int {
	return 2 + 3
}

func params(a, b int) int {
	return a + b
}

func floats() float64 {
	a, b := 1.5, 2.0
	return a + b
}

func unsignedDiv() uint {
	a, b := uint(7), uint(2)
	return a / b
}

// divByZero is skipped under the default policy.
func divByZero() int {
	a, b := 1, 0
	return a / b
}

func loop(n int) int {
	x := 0
	for i := 0; i < n; i++ {
		x += i
	}
	return x
}

func compare() bool {
	a, b := 1, 2
	return a < b
}
