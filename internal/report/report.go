// Package report formats per-block analysis traces.
//
// Trace layout for one block:
//
//	I0:  %a = add i32 2, 3 | I0:  %a = add i32 2, 3
//	I1:  %b = mul i32 %a, 4 | I1:  %b = mul i32 %a, 4
//	I2:  %c = sub i32 10, 7 | I2:  %c = sub i32 10, 7
//	inst: %c = sub i32 10, 7
//	inst: %a = add i32 2, 3
//	result: 3
//	result: 5
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mpyw/simplemath/internal/scan"
)

// Emit writes the aliased view of the block followed by the fold-removal
// list and the fold-result list, both in stored order.
// Faults, when present, are written last.
func Emit(w io.Writer, res *scan.Result) error {
	bw := bufio.NewWriter(w)
	b := res.Block

	for i := range b.Instrs {
		e := res.Aliases.At(i)
		fmt.Fprintf(bw, "I%d:  %s | I%d:  %s\n", i, b.Instrs[i].String(), e.Pos, b.At(e.Ref).String())
	}
	for _, rec := range res.Folds {
		fmt.Fprintf(bw, "inst: %s\n", b.At(rec.Ref).String())
	}
	for _, rec := range res.Folds {
		fmt.Fprintf(bw, "result: %d\n", rec.Value)
	}
	for _, f := range res.Faults {
		fmt.Fprintf(bw, "fault: %s: %v\n", b.At(f.Ref).String(), f.Err)
	}

	return bw.Flush()
}

// EmitAll writes the traces of several blocks in order.
func EmitAll(w io.Writer, results []*scan.Result) error {
	for _, res := range results {
		if err := Emit(w, res); err != nil {
			return err
		}
	}
	return nil
}
