// Command simplemath reports integer arithmetic whose operands are both
// literals after SSA construction.
//
// Usage:
//
//	simplemath ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which simplemath) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/simplemath"
)

func main() {
	singlechecker.Main(simplemath.Analyzer)
}
