// Command smtrace runs a simplemath function pass over textual IR and
// writes its trace to stderr.
//
// Usage:
//
//	smtrace [-pass sm|smprint] [-config simplemath.toml] [-v N] file.ll...
//
// A file named "-" is read from stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	"github.com/mpyw/simplemath/internal/config"
	"github.com/mpyw/simplemath/internal/ir"
	"github.com/mpyw/simplemath/internal/irtext"
	"github.com/mpyw/simplemath/internal/pass"

	_ "github.com/tliron/commonlog/simple"
)

// Exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitPass  = 2
)

var log = commonlog.GetLogger("simplemath.smtrace")

type options struct {
	pass      string
	config    string
	verbosity int
	files     []string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		util.Exit(exitUsage)
	}

	commonlog.Configure(opts.verbosity, nil)

	util.Exit(run(opts, os.Stdin, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("smtrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pass, "pass", "sm", "pass to run (sm or smprint)")
	fs.StringVar(&opts.config, "config", "", "path to a simplemath.toml configuration file")
	fs.IntVar(&opts.verbosity, "v", 0, "log verbosity (-4 silent, 2 debug)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: smtrace [-pass sm|smprint] [-config file] [-v N] file.ll...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	if len(opts.files) == 0 {
		return nil, errors.New("smtrace: no input files")
	}
	return opts, nil
}

// run parses every input, then runs the selected pass over each function in
// input order. The trace goes to stderr.
func run(opts *options, stdin io.Reader, stderr io.Writer) int {
	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(stderr, "smtrace: %v\n", err)
		return exitUsage
	}

	factory, err := pass.Builtin().Lookup(opts.pass)
	if err != nil {
		fmt.Fprintf(stderr, "smtrace: %v\n", err)
		return exitUsage
	}

	var funcs []*ir.Function
	for _, name := range opts.files {
		fns, err := parseFile(name, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "smtrace: %v\n", err)
			return exitUsage
		}
		log.Infof("%s: %d functions", name, len(fns))
		funcs = append(funcs, fns...)
	}

	p := factory(pass.Options{Out: stderr, Scan: cfg.ScanOptions()})
	for _, fn := range funcs {
		log.Debugf("running %s on %s", p.Name(), fn)
		if _, err := p.RunOnFunction(fn); err != nil {
			fmt.Fprintf(stderr, "smtrace: %s: %v\n", p.Name(), err)
			return exitPass
		}
	}
	return exitOK
}

func parseFile(name string, stdin io.Reader) ([]*ir.Function, error) {
	if name == "-" {
		fns, err := irtext.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("<stdin>: %w", err)
		}
		return fns, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fns, err := irtext.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fns, nil
}
