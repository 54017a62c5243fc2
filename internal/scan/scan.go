// Package scan drives the single forward pass over a basic block.
//
// For every instruction the scanner:
//
//  1. Pushes an identity entry into the alias table.
//  2. For two-operand instructions only:
//     a. Attempts a constant fold and front-inserts the FoldRecord.
//     b. Resolves back-references in the left then right operand name.
//
// Nothing in the block is modified; folds are only recorded. A fold whose
// exact result does not fit in int64 is dropped.
package scan

import (
	"errors"
	"slices"

	"github.com/mpyw/simplemath/internal/alias"
	"github.com/mpyw/simplemath/internal/fold"
	"github.com/mpyw/simplemath/internal/ir"
)

// DivZeroPolicy selects how a zero divisor in a literal division is handled.
type DivZeroPolicy int

const (
	// DivZeroSkip drops the fold silently.
	DivZeroSkip DivZeroPolicy = iota
	// DivZeroReport records a Fault for the instruction.
	DivZeroReport
)

// Options configures a Scanner.
type Options struct {
	Decoder alias.Decoder
	DivZero DivZeroPolicy
}

// DefaultOptions returns the default naming convention and the skip policy.
func DefaultOptions() Options {
	return Options{Decoder: alias.NewDecoder(), DivZero: DivZeroSkip}
}

// FoldRecord is an instruction judged foldable and its computed value.
type FoldRecord struct {
	Ref   ir.Ref
	Value int64
}

// Fault is a fold that was attempted and refused.
type Fault struct {
	Ref ir.Ref
	Err error
}

// Result holds everything a scan produced for one block.
type Result struct {
	Block   *ir.Block
	Aliases *alias.Table
	// Folds is in reverse discovery order: the last fold found comes first.
	Folds  []FoldRecord
	Faults []Fault
}

// Scanner runs the per-block analysis. It keeps no state between blocks.
type Scanner struct {
	opts     Options
	resolver *alias.Resolver
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	return &Scanner{
		opts:     opts,
		resolver: alias.NewResolver(opts.Decoder),
	}
}

// Scan analyses one block.
func (s *Scanner) Scan(b *ir.Block) *Result {
	res := &Result{
		Block:   b,
		Aliases: alias.NewTable(b.Len()),
	}

	for pos := range b.Instrs {
		ref := ir.Ref(pos)
		in := b.At(ref)
		res.Aliases.Push(ref, pos)

		left, right, ok := in.Binary()
		if !ok {
			continue
		}

		s.fold(res, ref, in, left, right)

		s.resolver.Resolve(res.Aliases, left.SymbolName(), ref, pos)
		s.resolver.Resolve(res.Aliases, right.SymbolName(), ref, pos)
	}

	return res
}

func (s *Scanner) fold(res *Result, ref ir.Ref, in *ir.Instruction, left, right ir.Operand) {
	v, ok, err := fold.TryFold(in.Op, left, right)
	switch {
	case errors.Is(err, fold.ErrDivisionByZero):
		if s.opts.DivZero == DivZeroReport {
			res.Faults = append(res.Faults, Fault{Ref: ref, Err: err})
		}
	case ok:
		res.Folds = slices.Insert(res.Folds, 0, FoldRecord{Ref: ref, Value: v})
	}
}

// ScanFunction scans every block of fn independently.
func (s *Scanner) ScanFunction(fn *ir.Function) []*Result {
	results := make([]*Result, 0, len(fn.Blocks))
	for _, b := range fn.Blocks {
		results = append(results, s.Scan(b))
	}
	return results
}
