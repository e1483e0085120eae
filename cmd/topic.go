package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/okonma/ledgerval/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [<topic>...]

  Show documentation for the given topics, the topic index when none is
  given, or everything with "*".
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	var b strings.Builder
	for _, name := range names {
		content, err := docs.Topic(name)
		if err != nil {
			return fail(err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	if err := printMarkdown(b.String()); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
