package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
)

type benchmarkCmd struct {
	account    string
	ticker     string
	idContains string
	maxDepth   int
	merge      bool
	output     string
}

func (*benchmarkCmd) Name() string     { return "benchmark" }
func (*benchmarkCmd) Synopsis() string { return "mirror an account's flows into a benchmark instrument" }
func (*benchmarkCmd) Usage() string {
	return `benchmark -account <account> -ticker <ticker> [-id-contains <sub>] [-merge]

  Converts each of the account's transaction legs into whole units of
  the benchmark ticker at the price on the leg's date, and emits the
  negated mirror entries. With -merge the mirror entries are written
  together with the original ledger.
`
}

func (c *benchmarkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account whose transactions are mirrored")
	f.StringVar(&c.ticker, "ticker", "", "benchmark instrument")
	f.StringVar(&c.idContains, "id-contains", "", "only mirror transaction ids containing this substring")
	f.IntVar(&c.maxDepth, "max-depth", 0, "price resolver depth bound (0 for default)")
	f.BoolVar(&c.merge, "merge", false, "write the original entries together with the benchmark entries")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
}

func (c *benchmarkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSystem()
	if err != nil {
		return fail(err)
	}

	generated, err := s.NewBenchmark(ledgerval.BenchmarkOptions{
		Account:    c.account,
		Ticker:     c.ticker,
		IDContains: c.idContains,
		MaxDepth:   c.maxDepth,
	})
	if err != nil {
		return fail(err)
	}

	out := ledgerval.NewLedger()
	if c.merge {
		if err := out.Append(s.Ledger.All()...); err != nil {
			return fail(err)
		}
	}
	if err := out.Append(generated...); err != nil {
		return fail(err)
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeEntries(w, sep, out)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
