// Command bibtexvcs inspects, formats and checks BibTeX database files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/supermihi/bibtexvcs"
)

var cli struct {
	Verbose bool `short:"v" help:"Enable debug logging."`
	Lenient bool `help:"Tolerate unparseable trailing content."`

	Dump  dumpCmd  `cmd:"" help:"Parse a database and print its object model."`
	Fmt   fmtCmd   `cmd:"" help:"Parse a database and reserialize it."`
	Check checkCmd `cmd:"" help:"Parse a database and report problems."`
}

type context struct {
	opts bibtexvcs.Options
}

func (c *context) parse(file string) (*bibtexvcs.Document, error) {
	doc, err := bibtexvcs.Parse(nil, file, c.opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	slog.Debug("parsed database", "file", file,
		"entries", doc.Len(), "macros", len(doc.Macros), "comments", len(doc.Comments))
	return doc, nil
}

type dumpCmd struct {
	File string `arg:"" type:"existingfile" help:"BibTeX database file."`
}

func (c *dumpCmd) Run(ctx *context) error {
	doc, err := ctx.parse(c.File)
	if err != nil {
		return err
	}
	for _, comment := range doc.Comments {
		repr.Println(comment)
	}
	if doc.Preamble != nil {
		repr.Println(doc.Preamble)
	}
	for _, m := range doc.Macros {
		repr.Println(m)
	}
	for _, e := range doc.Entries {
		repr.Println(e)
	}
	return nil
}

type fmtCmd struct {
	File   string `arg:"" type:"existingfile" help:"BibTeX database file."`
	Output string `short:"o" placeholder:"FILE" help:"Write to FILE instead of stdout."`
}

func (c *fmtCmd) Run(ctx *context) error {
	doc, err := ctx.parse(c.File)
	if err != nil {
		return err
	}
	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return doc.Write(out)
}

type checkCmd struct {
	File string `arg:"" type:"existingfile" help:"BibTeX database file."`
}

func (c *checkCmd) Run(ctx *context) error {
	opts := ctx.opts
	opts.Duplicates = bibtexvcs.DuplicateError
	doc, err := bibtexvcs.Parse(nil, c.File, opts)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", c.File, err)
	}
	problems := 0
	for _, name := range doc.UndefinedMacros() {
		fmt.Printf("undefined macro: %s\n", name)
		problems++
	}
	for _, e := range doc.Entries {
		if _, err := e.Filename(); err != nil {
			fmt.Printf("%s\n", err)
			problems++
		}
	}
	if problems > 0 {
		return fmt.Errorf("%d problem(s) in %s", problems, c.File)
	}
	fmt.Printf("%s: %d entries, no problems\n", c.File, doc.Len())
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("bibtexvcs"),
		kong.Description("Inspect, format and check BibTeX database files."),
		kong.UsageOnError(),
	)
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	err := ctx.Run(&context{opts: bibtexvcs.Options{Lenient: cli.Lenient}})
	ctx.FatalIfErrorf(err)
}
