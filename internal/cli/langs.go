package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/lexscheduler/internal/lang"
)

// LangsCommand lists the supported languages.
type LangsCommand struct {
	Out io.Writer
}

func NewLangsCommand() *LangsCommand {
	return &LangsCommand{Out: os.Stdout}
}

func (cmd *LangsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("langs", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s langs\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the languages supported by Lingvo Live and their codes.\n")
	}
	return fs.Parse(args)
}

func (cmd *LangsCommand) Run() error {
	tw := tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCODE")
	for _, l := range lang.All() {
		fmt.Fprintf(tw, "%s\t%d\n", l.Name, l.Code)
	}
	return tw.Flush()
}
