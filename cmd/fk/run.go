package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/flatdiff"
	"github.com/flatkit/flatkit/flatten"
	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/parse"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

func flattenRun(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.engine(flatten.FlattenMode)
	if err != nil {
		return err
	}
	return runFiles(cfg.MainConfig, cc, args, e)
}

func unflattenRun(cfg *UnflattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unflatten.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.engine(flatten.UnflattenMode)
	if err != nil {
		return err
	}
	return runFiles(cfg.MainConfig, cc, args, e)
}

func transformRun(cfg *TransformConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Transform.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.engine(flatten.TransformMode)
	if err != nil {
		return err
	}
	return runFiles(cfg.MainConfig, cc, args, e)
}

func convertRun(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	return runFiles(cfg.MainConfig, cc, args, nil)
}

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	e, err := cfg.engine(flatten.FlattenMode)
	if err != nil {
		return err
	}
	from, err := parseArg(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	to, err := parseArg(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	changes, err := flatdiff.Diff(from, to, e)
	if err != nil {
		return err
	}
	if cfg.AsJSON {
		return encode.Encode(flatdiff.AsNode(changes), cc.Out, cfg.encOpts(cc.Out)...)
	}
	return flatdiff.Render(cc.Out, changes, colorize(cfg.MainConfig, cc.Out))
}

// runFiles processes each file argument, or stdin when none are
// given.  A nil engine means format conversion only.
func runFiles(cfg *MainConfig, cc *cli.Context, args []string, e *flatten.Engine) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		in, err := readArg(arg)
		if err != nil {
			return err
		}
		if err := runInput(cfg, cc.Out, e, in, cfg.inFormatFor(arg)); err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
	}
	return nil
}

func runInput(cfg *MainConfig, w io.Writer, e *flatten.Engine, in []byte, inFmt format.Format) error {
	eopts := cfg.encOpts(w)
	if !cfg.Batch {
		return runDoc(w, e, in, inFmt, eopts)
	}
	outFmt := encode.FormatFromOpts(eopts...)
	docs := splitDocs(inFmt, in)
	// whole-batch dispatch when no re-encoding is involved
	if e != nil && inFmt.IsJSON() && outFmt.IsJSON() && cfg.WireOut {
		outs, err := e.ExecuteBatch(docs)
		if err != nil {
			return err
		}
		for _, out := range outs {
			if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
				return err
			}
		}
		return nil
	}
	for i, doc := range docs {
		if i > 0 && outFmt.IsYAML() {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if err := runDoc(w, e, doc, inFmt, eopts); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	return nil
}

func runDoc(w io.Writer, e *flatten.Engine, doc []byte, inFmt format.Format, eopts []encode.EncodeOption) error {
	node, err := parse.Parse(doc, parse.ParseFormat(inFmt))
	if err != nil {
		return err
	}
	if e != nil {
		node, err = e.Apply(node)
		if err != nil {
			return err
		}
	}
	return encode.Encode(node, w, eopts...)
}

func parseArg(cfg *MainConfig, arg string) (*ir.Node, error) {
	in, err := readArg(arg)
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse(in, cfg.parseOptsFor(arg)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return node, nil
}

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	in, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", arg, err)
	}
	return in, nil
}

// splitDocs cuts a stream into documents: one JSON value per line, or
// "---" separated YAML documents.
func splitDocs(inFmt format.Format, in []byte) [][]byte {
	if inFmt.IsYAML() {
		return bytes.Split(in, []byte("\n---\n"))
	}
	var docs [][]byte
	sc := bufio.NewScanner(bytes.NewReader(in))
	sc.Buffer(nil, 16<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		docs = append(docs, append([]byte(nil), line...))
	}
	return docs
}

func colorize(cfg *MainConfig, w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
