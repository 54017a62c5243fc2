// Command gengolden regenerates the golden trace files under testdata/trace.
//
// Run it from the module root:
//
//	go run ./testdata/cmd/gengolden
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mpyw/simplemath/internal/irtext"
	"github.com/mpyw/simplemath/internal/pass"
	"github.com/mpyw/simplemath/internal/scan"
)

func main() {
	inputs, err := filepath.Glob(filepath.Join("testdata", "trace", "*.ll"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, input := range inputs {
		fmt.Printf("Generating golden for %s...\n", filepath.Base(input))

		if err := generateGoldenFile(input); err != nil {
			fmt.Printf("  Error: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("  Created %s.golden\n", filepath.Base(input))
	}
	if failed {
		os.Exit(1)
	}
}

func generateGoldenFile(input string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	fns, err := irtext.Parse(f)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	p := pass.NewFoldPass(pass.Options{Out: &buf, Scan: scan.DefaultOptions()})
	for _, fn := range fns {
		if _, err := p.RunOnFunction(fn); err != nil {
			return err
		}
	}

	return os.WriteFile(input+".golden", buf.Bytes(), 0o644)
}
