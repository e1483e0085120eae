package cmd

import (
	"context"
	"flag"
	"io"
	"net/http"
	"time"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
	"github.com/okonma/ledgerval/feed"
)

type fetchCmd struct {
	url       string
	ticker    string
	currency  string
	pricePath string
	datePath  string
	merge     bool
	output    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch a quote from a JSON feed as a price entry" }
func (*fetchCmd) Usage() string {
	return `fetch -url <url> -ticker <ticker> -c <currency> -price-path <jsonpath> [-date-path <jsonpath>] [-merge]

  Downloads the feed payload, extracts the quoted price with a jsonpath
  expression and emits the resulting price entry. With -merge the entry
  is written together with the original ledger.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "feed URL")
	f.StringVar(&c.ticker, "ticker", "", "instrument the feed quotes")
	f.StringVar(&c.currency, "c", "", "quote currency")
	f.StringVar(&c.pricePath, "price-path", "", "jsonpath expression locating the price")
	f.StringVar(&c.datePath, "date-path", "", "jsonpath expression locating the quote date (today when empty)")
	f.BoolVar(&c.merge, "merge", false, "write the original entries together with the fetched entry")
	f.StringVar(&c.output, "o", "", "output file (stdout when empty)")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := &http.Client{Timeout: 30 * time.Second}
	entry, err := feed.Fetch(client, c.url, feed.Source{
		Ticker:    c.ticker,
		Currency:  c.currency,
		PricePath: c.pricePath,
		DatePath:  c.datePath,
	})
	if err != nil {
		return fail(err)
	}

	out := ledgerval.NewLedger()
	if c.merge {
		ledger, err := decodeLedger(*ledgerFile)
		if err != nil {
			return fail(err)
		}
		if err := out.Append(ledger.All()...); err != nil {
			return fail(err)
		}
	}
	if err := out.Append(entry); err != nil {
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
