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

type runningTotalCmd struct {
	increment string
	currency  string
	group     bool
	maxDepth  int
	where     whereFlags
	output    string
	pretty    bool
}

func (*runningTotalCmd) Name() string { return "running-total" }
func (*runningTotalCmd) Synopsis() string {
	return "reconstruct balances over calendar increments"
}
func (*runningTotalCmd) Usage() string {
	return `running-total -i <increment> [-c <currency>] [-group] [-where Type:Column:Value]...

  Buckets entry quantities at a calendar increment and accumulates
  running totals per account and instrument, optionally valued in a
  single currency at each period end.
`
}

func (c *runningTotalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.increment, "i", "month", "calendar increment: day, week, month, quarter or year")
	f.StringVar(&c.currency, "c", "", "fair-value currency (no valuation when empty)")
	f.BoolVar(&c.group, "group", false, "collapse instruments, summing fair values per period and account")
	f.IntVar(&c.maxDepth, "max-depth", 0, "price resolver depth bound (0 for default)")
	f.Var(&c.where, "where", "filter spec Type:Column:Value, repeatable")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
	f.BoolVar(&c.pretty, "pretty", false, "render the report as a terminal table")
}

func (c *runningTotalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	increment, err := date.ParsePeriod(c.increment)
	if err != nil {
		return fail(err)
	}

	s, err := newSystem()
	if err != nil {
		return fail(err)
	}

	report, err := s.NewRunningTotal(ledgerval.RunningTotalOptions{
		Filters:           c.where,
		Increment:         increment,
		FairValueCurrency: c.currency,
		GroupTypes:        c.group,
		MaxDepth:          c.maxDepth,
	})
	if err != nil {
		return fail(err)
	}

	if c.pretty {
		if err := printMarkdown(renderer.RunningTotal(report)); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeRunningTotal(w, sep, report)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
