// Package ir defines the block-local intermediate representation consumed by
// the fold and alias analysis.
//
// Hosts (Go SSA, textual IR) lower their own values into this form once, so
// the analysis never performs runtime type checks on host objects.
//
//	Function
//	  └─ Block (arena)
//	       └─ Instruction ── Operand (Literal | Named | Opaque)
//
// Instructions are owned by their block and referenced elsewhere only through
// Ref, a stable index into that block.
package ir

import (
	"fmt"
	"go/token"
	"strconv"
)

// Opcode is the operation an instruction performs.
type Opcode int

// Opcodes understood by the folder. Everything else lowers to Other.
const (
	Other Opcode = iota
	Add
	Sub
	Mul
	SDiv
)

var opcodeNames = [...]string{
	Other: "other",
	Add:   "add",
	Sub:   "sub",
	Mul:   "mul",
	SDiv:  "sdiv",
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return "Opcode(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodeNames[op]
}

// IsArith reports whether op is one of the foldable binary integer opcodes.
func (op Opcode) IsArith() bool {
	switch op {
	case Add, Sub, Mul, SDiv:
		return true
	}
	return false
}

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	KindOpaque OperandKind = iota
	KindLiteral
	KindNamed
)

// Operand is a classified instruction operand.
type Operand struct {
	Kind  OperandKind
	Value int64  // valid when Kind == KindLiteral
	Name  string // valid when Kind == KindNamed
}

// Literal returns a compile-time integer operand.
func Literal(v int64) Operand { return Operand{Kind: KindLiteral, Value: v} }

// Named returns a reference operand carrying a symbolic name.
func Named(name string) Operand { return Operand{Kind: KindNamed, Name: name} }

// Opaque returns an operand that is neither a literal nor named.
func Opaque() Operand { return Operand{Kind: KindOpaque} }

// Int returns the literal value and whether the operand is a literal.
func (o Operand) Int() (int64, bool) {
	return o.Value, o.Kind == KindLiteral
}

// SymbolName returns the operand's symbolic name, or "" when it has none.
// Literals carry no name.
func (o Operand) SymbolName() string {
	if o.Kind != KindNamed {
		return ""
	}
	return o.Name
}

func (o Operand) String() string {
	switch o.Kind {
	case KindLiteral:
		return strconv.FormatInt(o.Value, 10)
	case KindNamed:
		return "%" + o.Name
	default:
		return "<opaque>"
	}
}

// Ref is a non-owning handle to an instruction: its index in the block.
type Ref int

// Instruction is a single IR instruction.
type Instruction struct {
	Op       Opcode
	Operands []Operand
	Name     string    // result name, may be empty
	Text     string    // rendering used in reports
	Pos      token.Pos // Go host source position
	Line     int       // text host line number
}

// Binary returns the two operands of a two-operand instruction.
// ok is false for any other operand count.
func (in *Instruction) Binary() (left, right Operand, ok bool) {
	if len(in.Operands) != 2 {
		return Operand{}, Operand{}, false
	}
	return in.Operands[0], in.Operands[1], true
}

func (in *Instruction) String() string {
	if in.Text != "" {
		return in.Text
	}
	s := in.Op.String()
	for i, o := range in.Operands {
		if i == 0 {
			s += " " + o.String()
		} else {
			s += ", " + o.String()
		}
	}
	if in.Name != "" {
		s = "%" + in.Name + " = " + s
	}
	return s
}

// Block is an ordered arena of instructions.
type Block struct {
	Label  string
	Instrs []Instruction
}

// Len returns the number of instructions in the block.
func (b *Block) Len() int { return len(b.Instrs) }

// At resolves a Ref. It panics if r is out of range, like a slice index.
func (b *Block) At(r Ref) *Instruction { return &b.Instrs[r] }

// Append adds an instruction and returns its handle.
func (b *Block) Append(in Instruction) Ref {
	b.Instrs = append(b.Instrs, in)
	return Ref(len(b.Instrs) - 1)
}

// Function is an ordered list of blocks.
type Function struct {
	Name   string
	Blocks []*Block
}

func (f *Function) String() string {
	return fmt.Sprintf("%s (%d blocks)", f.Name, len(f.Blocks))
}
