// Package feed turns JSON quote payloads from price providers into
// normalized PriceUpdate ledger entries.
//
// Providers differ only in the shape of their JSON, so a Source describes
// where to find the quoted price (and optionally the quote date) with
// jsonpath expressions instead of one parser per provider.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/okonma/ledgerval"
	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// Source describes one quote feed for one instrument.
type Source struct {
	// Ticker is the instrument the feed quotes.
	Ticker string
	// Currency is the quote currency.
	Currency string
	// PricePath is the jsonpath expression locating the price in the payload.
	PricePath string
	// DatePath optionally locates the quote date; when empty the quote is
	// dated today.
	DatePath string
}

// Parse extracts a PriceUpdate entry from a JSON payload.
func (s Source) Parse(payload []byte) (ledgerval.Entry, error) {
	var jobj any
	if err := json.Unmarshal(payload, &jobj); err != nil {
		return ledgerval.Entry{}, fmt.Errorf("invalid quote payload for %s: %w", s.Ticker, err)
	}

	price, err := evalDecimal(jobj, s.PricePath)
	if err != nil {
		return ledgerval.Entry{}, fmt.Errorf("could not extract %s price: %w", s.Ticker, err)
	}

	on := date.Today()
	if s.DatePath != "" {
		raw, err := eval(jobj, s.DatePath)
		if err != nil {
			return ledgerval.Entry{}, fmt.Errorf("could not extract %s quote date: %w", s.Ticker, err)
		}
		str, ok := raw.(string)
		if !ok {
			return ledgerval.Entry{}, fmt.Errorf("quote date for %s is not a string: %v", s.Ticker, raw)
		}
		if on, err = date.Parse(str); err != nil {
			return ledgerval.Entry{}, err
		}
	}

	return ledgerval.NewPriceUpdate(on, s.Ticker, price, s.Currency), nil
}

// Fetch downloads the feed payload and parses it into a PriceUpdate entry.
func Fetch(client *http.Client, url string, s Source) (ledgerval.Entry, error) {
	resp, err := client.Get(url)
	if err != nil {
		return ledgerval.Entry{}, fmt.Errorf("could not fetch %s quote: %w", s.Ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ledgerval.Entry{}, fmt.Errorf("could not fetch %s quote: status %s", s.Ticker, resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return ledgerval.Entry{}, fmt.Errorf("could not read %s quote: %w", s.Ticker, err)
	}
	return s.Parse(payload)
}

// eval runs a jsonpath expression, unwrapping a single-element list result:
// jsonpath is never clear about whether it returns a list of one answer or
// a single answer.
func eval(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func evalDecimal(jobj any, path string) (decimal.Decimal, error) {
	jval, err := eval(jobj, path)
	if err != nil {
		return decimal.Zero, err
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("jsonpath %q: %q is not a number: %w", path, v, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("jsonpath %q: %v is not a number", path, strconv.Quote(fmt.Sprint(jval)))
	}
}
