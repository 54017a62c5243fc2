// Package lower converts go/ssa functions into the block-local IR.
//
// Mapping:
//
//	*ssa.BinOp  +  -  *   on integers        → ir.Add, ir.Sub, ir.Mul
//	*ssa.BinOp  /         on signed integers → ir.SDiv
//	anything else                            → ir.Other
//
// Operands are the instruction's non-nil Operands, classified once.
package lower

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/simplemath/internal/ir"
)

// Function lowers every block of fn. A function without blocks (external
// or synthetic) yields an empty ir.Function.
func Function(fn *ssa.Function) *ir.Function {
	out := &ir.Function{Name: fn.String()}
	for _, b := range fn.Blocks {
		out.Blocks = append(out.Blocks, Block(b))
	}
	return out
}

// Block lowers a single basic block.
func Block(b *ssa.BasicBlock) *ir.Block {
	out := &ir.Block{
		Label:  fmt.Sprintf("%d.%s", b.Index, b.Comment),
		Instrs: make([]ir.Instruction, 0, len(b.Instrs)),
	}
	for _, instr := range b.Instrs {
		out.Append(Instruction(instr))
	}
	return out
}

// Instruction lowers a single SSA instruction.
func Instruction(instr ssa.Instruction) ir.Instruction {
	in := ir.Instruction{
		Op:   ir.Other,
		Text: instrText(instr),
		Pos:  instr.Pos(),
	}
	if v, ok := instr.(ssa.Value); ok {
		in.Name = v.Name()
	}

	if binop, ok := instr.(*ssa.BinOp); ok {
		in.Op = opcode(binop)
		in.Operands = []ir.Operand{Classify(binop.X), Classify(binop.Y)}
		return in
	}

	for _, op := range instr.Operands(nil) {
		if op == nil || *op == nil {
			continue
		}
		in.Operands = append(in.Operands, Classify(*op))
	}
	return in
}

// Classify maps an SSA value to an operand.
//
// Integer constants are literals; any other value with a name is a named
// reference. Constant names ("2:int") are never used as references.
func Classify(v ssa.Value) ir.Operand {
	if v == nil {
		return ir.Opaque()
	}
	if c, ok := v.(*ssa.Const); ok {
		if c.Value != nil && isInteger(c.Type()) {
			return ir.Literal(intValue(c))
		}
		return ir.Opaque()
	}
	if name := v.Name(); name != "" {
		return ir.Named(name)
	}
	return ir.Opaque()
}

// intValue sign-extends the constant to int64. Unsigned values above
// MaxInt64 keep their bit pattern.
func intValue(c *ssa.Const) int64 {
	x := constant.ToInt(c.Value)
	if v, ok := constant.Int64Val(x); ok {
		return v
	}
	if u, ok := constant.Uint64Val(x); ok {
		return int64(u)
	}
	return 0
}

// opcode maps signed integer arithmetic. Folded values are signed, so
// unsigned operations stay Other.
func opcode(b *ssa.BinOp) ir.Opcode {
	t := b.Type()
	if !isInteger(t) || isUnsigned(t) {
		return ir.Other
	}
	switch b.Op {
	case token.ADD:
		return ir.Add
	case token.SUB:
		return ir.Sub
	case token.MUL:
		return ir.Mul
	case token.QUO:
		return ir.SDiv
	}
	return ir.Other
}

func basic(t types.Type) (*types.Basic, bool) {
	b, ok := t.Underlying().(*types.Basic)
	return b, ok
}

func isInteger(t types.Type) bool {
	b, ok := basic(t)
	return ok && b.Info()&types.IsInteger != 0
}

func isUnsigned(t types.Type) bool {
	b, ok := basic(t)
	return ok && b.Info()&types.IsUnsigned != 0
}

// instrText renders an instruction the way ssa dumps do:
// "t0 = 2:int + 3:int" for values, the bare form otherwise.
func instrText(instr ssa.Instruction) string {
	if v, ok := instr.(ssa.Value); ok && v.Name() != "" {
		return v.Name() + " = " + instr.String()
	}
	return instr.String()
}
