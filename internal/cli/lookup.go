package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/lexscheduler/internal/config"
	"github.com/mrlokans/lexscheduler/internal/entrypoint"
	"github.com/mrlokans/lexscheduler/internal/lang"
	"github.com/mrlokans/lexscheduler/internal/lingvo"
)

// WordFormsCommand prints the inflected forms of a word.
type WordFormsCommand struct {
	Text  string
	Lang  string
	Async bool
	JSON  bool

	Config *config.Config
	Out    io.Writer
}

func NewWordFormsCommand(cfg *config.Config) *WordFormsCommand {
	return &WordFormsCommand{Config: cfg, Out: os.Stdout}
}

func (cmd *WordFormsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("wordforms", flag.ExitOnError)

	fs.StringVar(&cmd.Text, "text", "", "Word to look up (required)")
	fs.StringVar(&cmd.Lang, "lang", "", "Language name or code (default: DEFAULT_SRC_LANG)")
	fs.BoolVar(&cmd.Async, "async", false, "Run the lookup through the asynchronous API")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the raw response as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s wordforms -text <word> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Look up the word forms of a word in Lingvo Live.\n")
		fmt.Fprintf(os.Stderr, "Requires LINGVO_API_KEY.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s wordforms -text went -lang en\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s wordforms -text Katze -lang 1031 -json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Text == "" {
		return fmt.Errorf("required flag -text not provided")
	}

	return nil
}

func (cmd *WordFormsCommand) Run(ctx context.Context) error {
	src, _ := entrypoint.DefaultLangs(cmd.Config)
	l, err := resolveLang(cmd.Lang, src)
	if err != nil {
		return err
	}

	client, err := entrypoint.NewLingvoClient(ctx, cmd.Config)
	if err != nil {
		return err
	}

	req := lingvo.WordForms{Text: cmd.Text, Lang: l}

	var result lingvo.Result
	if cmd.Async {
		result, err = executeAsync(ctx, client, req)
	} else {
		result, err = client.Execute(ctx, req)
	}
	if err != nil {
		return err
	}

	if cmd.JSON {
		return printJSON(cmd.Out, result)
	}

	resp, ok := result.(*lingvo.WordFormsResponse)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if len(resp.LexemModels) == 0 {
		fmt.Fprintf(cmd.Out, "No word forms found for %q\n", cmd.Text)
		return nil
	}
	for _, m := range resp.LexemModels {
		fmt.Fprintf(cmd.Out, "%s (%s)\n", m.Lexem, m.PartOfSpeech)
		if forms := m.Paradigm.Forms(); len(forms) > 0 {
			fmt.Fprintf(cmd.Out, "  %s\n", strings.Join(forms, ", "))
		}
	}
	return nil
}

// SuggestsCommand prints spelling suggestions for a word.
type SuggestsCommand struct {
	Text string
	Src  string
	Dst  string
	JSON bool

	Config *config.Config
	Out    io.Writer
}

func NewSuggestsCommand(cfg *config.Config) *SuggestsCommand {
	return &SuggestsCommand{Config: cfg, Out: os.Stdout}
}

func (cmd *SuggestsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("suggests", flag.ExitOnError)

	fs.StringVar(&cmd.Text, "text", "", "Word to get suggestions for (required)")
	fs.StringVar(&cmd.Src, "src", "", "Source language name or code (default: DEFAULT_SRC_LANG)")
	fs.StringVar(&cmd.Dst, "dst", "", "Destination language name or code (default: DEFAULT_DST_LANG)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the raw response as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s suggests -text <word> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Get spelling suggestions from Lingvo Live.\n")
		fmt.Fprintf(os.Stderr, "Requires LINGVO_API_KEY.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Text == "" {
		return fmt.Errorf("required flag -text not provided")
	}

	return nil
}

func (cmd *SuggestsCommand) Run(ctx context.Context) error {
	defSrc, defDst := entrypoint.DefaultLangs(cmd.Config)
	src, err := resolveLang(cmd.Src, defSrc)
	if err != nil {
		return err
	}
	dst, err := resolveLang(cmd.Dst, defDst)
	if err != nil {
		return err
	}

	client, err := entrypoint.NewLingvoClient(ctx, cmd.Config)
	if err != nil {
		return err
	}

	resp, err := client.GetSuggests(ctx, cmd.Text, src, dst)
	if err != nil {
		return err
	}

	if cmd.JSON {
		return printJSON(cmd.Out, resp)
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if len(resp.Suggests) == 0 {
		fmt.Fprintf(cmd.Out, "No suggestions for %q\n", cmd.Text)
		return nil
	}
	for _, s := range resp.Suggests {
		fmt.Fprintln(cmd.Out, s)
	}
	return nil
}

func resolveLang(raw string, def lang.Lang) (lang.Lang, error) {
	if raw == "" {
		return def, nil
	}
	return lang.Parse(raw)
}

// executeAsync waits for an ExecuteAsync callback or ctx, whichever is first.
func executeAsync(ctx context.Context, client *lingvo.Client, req lingvo.Request) (lingvo.Result, error) {
	type outcome struct {
		result lingvo.Result
		err    error
	}
	done := make(chan outcome, 1)

	started := time.Now()
	client.ExecuteAsync(ctx, req, lingvo.CallbackFuncs{
		Response: func(_ lingvo.Request, result lingvo.Result) { done <- outcome{result: result} },
		Failure:  func(_ lingvo.Request, err error) { done <- outcome{err: err} },
	})

	select {
	case o := <-done:
		fmt.Fprintf(os.Stderr, "async %s completed in %v\n", req.Method(), time.Since(started).Round(time.Millisecond))
		return o.result, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
