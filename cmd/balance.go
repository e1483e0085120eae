package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
	"github.com/okonma/ledgerval/date"
	"github.com/okonma/ledgerval/renderer"
)

type balanceCmd struct {
	currency string
	asOf     string
	group    bool
	maxDepth int
	where    whereFlags
	output   string
	pretty   bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "compute per-account, per-instrument balances" }
func (*balanceCmd) Usage() string {
	return `balance [-c <currency>] [-d <date>] [-group] [-where Type:Column:Value]...

  Sums entry quantities per account and instrument over the dense cross
  product of both, optionally valued in a single currency.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "fair-value currency (no valuation when empty)")
	f.StringVar(&c.asOf, "d", "", "fair-value as-of date (defaults to the newest entry)")
	f.BoolVar(&c.group, "group", false, "collapse instruments, summing fair values per account")
	f.IntVar(&c.maxDepth, "max-depth", 0, "price resolver depth bound (0 for default)")
	f.Var(&c.where, "where", "filter spec Type:Column:Value, repeatable")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
	f.BoolVar(&c.pretty, "pretty", false, "render the report as a terminal table")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSystem()
	if err != nil {
		return fail(err)
	}

	opts := ledgerval.BalanceOptions{
		Filters:           c.where,
		FairValueCurrency: c.currency,
		GroupTypes:        c.group,
		MaxDepth:          c.maxDepth,
	}
	if c.asOf != "" {
		if opts.AsOf, err = date.Parse(c.asOf); err != nil {
			return fail(err)
		}
	}

	report, err := s.NewBalance(opts)
	if err != nil {
		return fail(err)
	}

	if c.pretty {
		if err := printMarkdown(renderer.Balance(report)); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeBalance(w, sep, report)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
