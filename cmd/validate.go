package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
	"github.com/okonma/ledgerval/renderer"
)

type validateCmd struct {
	precision int
	where     whereFlags
	output    string
	pretty    bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check transactions for double-entry balance" }
func (*validateCmd) Usage() string {
	return `validate [-precision <places>] [-where Type:Column:Value]...

  Reconciles every transaction's legs and reports whether each balances
  to zero after rounding.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.precision, "precision", int(ledgerval.DefaultPrecision), "decimal places for balance rounding")
	f.Var(&c.where, "where", "filter spec Type:Column:Value, repeatable")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
	f.BoolVar(&c.pretty, "pretty", false, "render the report as a terminal table")
}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSystem()
	if err != nil {
		return fail(err)
	}

	report := s.NewValidationAt(c.where, int32(c.precision))

	if c.pretty {
		if err := printMarkdown(renderer.Validation(report)); err != nil {
			return fail(err)
		}
		return exitValidation(report)
	}

	sep, err := sepRune()
	if err != nil {
		return fail(err)
	}
	err = writeOutput(c.output, func(w io.Writer) error {
		return ledgerval.EncodeValidation(w, sep, report)
	})
	if err != nil {
		return fail(err)
	}
	return exitValidation(report)
}

// exitValidation maps the report onto the process exit status so scripts
// can gate on it.
func exitValidation(report *ledgerval.ValidationReport) subcommands.ExitStatus {
	for _, row := range report.Rows {
		if !row.Valid {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
