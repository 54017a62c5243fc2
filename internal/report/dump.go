package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mpyw/simplemath/internal/ir"
)

// Dump writes every instruction of the block with its position, without
// any analysis.
func Dump(w io.Writer, b *ir.Block) error {
	bw := bufio.NewWriter(w)
	for i := range b.Instrs {
		fmt.Fprintf(bw, "I%d:   %s\n", i, b.Instrs[i].String())
	}
	return bw.Flush()
}
