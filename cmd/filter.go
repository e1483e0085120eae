package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
)

type filterCmd struct {
	where  whereFlags
	output string
}

func (*filterCmd) Name() string     { return "filter" }
func (*filterCmd) Synopsis() string { return "write the entries matching a filter chain" }
func (*filterCmd) Usage() string {
	return `filter -where Type:Column:Value [-where ...] [-o <file>]

  Applies each filter in order; an entry must match all of them to
  survive. Column names are the entries file header names.
`
}

func (c *filterCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.where, "where", "filter spec Type:Column:Value, repeatable")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
}

func (c *filterCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		return fail(err)
	}

	filtered := ledgerval.NewLedger()
	if err := filtered.Append(ledgerval.Apply(ledger.All(), c.where)...); err != nil {
		return fail(err)
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeEntries(w, sep, filtered)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
