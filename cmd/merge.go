package cmd

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
)

var errNoInputs = errors.New("at least one entries file is required")

type mergeCmd struct {
	output string
}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge entry files into one chronological ledger" }
func (*mergeCmd) Usage() string {
	return `merge [-o <file>] <entries.csv>...

  Reads each entries file, appends everything into a single ledger and
  writes it back out sorted by date. The -ledger-file flag is ignored;
  inputs are the positional arguments.
`
}

func (c *mergeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
}

func (c *mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return fail(errNoInputs)
	}

	merged := ledgerval.NewLedger()
	for _, path := range f.Args() {
		ledger, err := decodeLedger(path)
		if err != nil {
			return fail(err)
		}
		if err := merged.Append(ledger.All()...); err != nil {
			return fail(err)
		}
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeEntries(w, sep, merged)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
