// Package cmd implements the CLI application driving the ledger valuation
// engine. Commands read and write the normalized entry format; the engine
// itself never touches a file.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/okonma/ledgerval"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package calls Register() and lets the commander dispatch.
func Register(c *subcommands.Commander) {
	c.Register(&mergeCmd{}, "entries")
	c.Register(&filterCmd{}, "entries")
	c.Register(&benchmarkCmd{}, "entries")
	c.Register(&fetchCmd{}, "entries")

	c.Register(&balanceCmd{}, "reports")
	c.Register(&runningTotalCmd{}, "reports")
	c.Register(&validateCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables for the shared flags.

var ledgerFile = flag.String("ledger-file", "entries.csv", "Path to the entries file")
var separator = flag.String("separator", ";", "Column separator of the entries file")
var verbose = flag.Bool("verbose", false, "Enable debug diagnostics on stderr")

// sepRune returns the configured column separator.
func sepRune() (rune, error) {
	runes := []rune(*separator)
	if len(runes) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", *separator)
	}
	return runes[0], nil
}

// newLogger builds the structured logger injected into the engine.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// decodeLedger reads the entries file into a ledger.
func decodeLedger(path string) (*ledgerval.Ledger, error) {
	sep, err := sepRune()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open entries file: %w", err)
	}
	defer f.Close()
	return ledgerval.DecodeEntries(f, sep)
}

// newSystem loads the default entries file into a valuation system.
func newSystem() (*ledgerval.ValuationSystem, error) {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		return nil, err
	}
	s := ledgerval.NewValuationSystem(ledger)
	s.Log = newLogger()
	return s, nil
}

// writeOutput writes through fn to the given path, or to stdout when the
// path is empty or "-".
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer f.Close()
	return fn(f)
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(markdown string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// whereFlags collects repeated -where filter specs of the form
// "Type:Column:Value".
type whereFlags []ledgerval.Filter

func (w *whereFlags) String() string {
	specs := make([]string, 0, len(*w))
	for _, f := range *w {
		specs = append(specs, fmt.Sprintf("%s:%s:%s", f.Type, f.Column, f.Value))
	}
	return strings.Join(specs, " ")
}

func (w *whereFlags) Set(spec string) error {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("invalid filter %q, want Type:Column:Value", spec)
	}
	*w = append(*w, ledgerval.Filter{
		Type:   ledgerval.ParseFilterType(parts[0]),
		Column: parts[1],
		Value:  parts[2],
	})
	return nil
}
