// Package pass provides the function-level passes and the registry that
// selects them by key.
//
// A host invokes RunOnFunction once per function. Passes never change the
// IR, so the returned changed flag is always false.
package pass

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/mpyw/simplemath/internal/ir"
	"github.com/mpyw/simplemath/internal/report"
	"github.com/mpyw/simplemath/internal/scan"
)

var log = commonlog.GetLogger("simplemath.pass")

// FunctionPass is a unit of work run once per function.
type FunctionPass interface {
	Name() string
	RunOnFunction(fn *ir.Function) (changed bool, err error)
}

// Options are shared by every factory.
type Options struct {
	Out  io.Writer // trace sink
	Scan scan.Options
}

// FoldPass scans each block and emits the alias and fold trace.
type FoldPass struct {
	out     io.Writer
	scanner *scan.Scanner
}

// NewFoldPass creates a FoldPass.
func NewFoldPass(opts Options) FunctionPass {
	return &FoldPass{out: opts.Out, scanner: scan.New(opts.Scan)}
}

// Name implements FunctionPass.
func (p *FoldPass) Name() string { return "sm" }

// RunOnFunction implements FunctionPass.
func (p *FoldPass) RunOnFunction(fn *ir.Function) (bool, error) {
	for _, b := range fn.Blocks {
		res := p.scanner.Scan(b)
		log.Debugf("%s/%s: %d instructions, %d folds", fn.Name, b.Label, b.Len(), len(res.Folds))
		if err := report.Emit(p.out, res); err != nil {
			return false, fmt.Errorf("%s: %w", fn.Name, err)
		}
	}
	return false, nil
}

// PrintPass dumps every instruction with its block position.
type PrintPass struct {
	out io.Writer
}

// NewPrintPass creates a PrintPass.
func NewPrintPass(opts Options) FunctionPass {
	return &PrintPass{out: opts.Out}
}

// Name implements FunctionPass.
func (p *PrintPass) Name() string { return "smprint" }

// RunOnFunction implements FunctionPass.
func (p *PrintPass) RunOnFunction(fn *ir.Function) (bool, error) {
	for _, b := range fn.Blocks {
		if err := report.Dump(p.out, b); err != nil {
			return false, fmt.Errorf("%s: %w", fn.Name, err)
		}
	}
	return false, nil
}
