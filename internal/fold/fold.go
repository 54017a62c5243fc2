// Package fold evaluates binary integer arithmetic over literal operands.
package fold

import (
	"errors"
	"math"

	"github.com/mpyw/simplemath/internal/ir"
)

var (
	// ErrDivisionByZero is returned when a signed division has a zero divisor.
	ErrDivisionByZero = errors.New("integer division by zero")
	// ErrOverflow is returned when the exact result does not fit in int64.
	ErrOverflow = errors.New("integer overflow")
)

// TryFold computes the exact value of op(left, right).
//
// ok is false when op is not foldable or either operand is not a literal.
// Literals are taken at their sign-extended value and the result is not
// narrowed to the instruction's type, so "add i8 100, 100" folds to 200.
// Division truncates toward zero.
func TryFold(op ir.Opcode, left, right ir.Operand) (value int64, ok bool, err error) {
	if !op.IsArith() {
		return 0, false, nil
	}
	l, lok := left.Int()
	r, rok := right.Int()
	if !lok || !rok {
		return 0, false, nil
	}

	switch op {
	case ir.Add:
		sum := l + r
		if (l > 0 && r > 0 && sum < 0) || (l < 0 && r < 0 && sum >= 0) {
			return 0, false, ErrOverflow
		}
		return sum, true, nil
	case ir.Sub:
		diff := l - r
		if (l >= 0 && r < 0 && diff < 0) || (l < 0 && r > 0 && diff >= 0) {
			return 0, false, ErrOverflow
		}
		return diff, true, nil
	case ir.Mul:
		if l == 0 || r == 0 {
			return 0, true, nil
		}
		prod := l * r
		if prod/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
			return 0, false, ErrOverflow
		}
		return prod, true, nil
	case ir.SDiv:
		if r == 0 {
			return 0, false, ErrDivisionByZero
		}
		if l == math.MinInt64 && r == -1 {
			return 0, false, ErrOverflow
		}
		return l / r, true, nil
	}
	return 0, false, nil
}
