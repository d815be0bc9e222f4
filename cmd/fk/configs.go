package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/flatten"
	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Sep     string `cli:"name=s aliases=sep desc='path separator (default .)'"`
	Lower   bool   `cli:"name=lower desc='lowercase keys'"`
	Types   bool   `cli:"name=types desc='convert string values to numbers, bools, nulls and dates'"`
	Collide bool   `cli:"name=collide desc='collect colliding keys into arrays'"`

	NoEmptyStrings bool `cli:"name=noEmptyStrings aliases=nes desc='drop empty string values'"`
	NoNulls        bool `cli:"name=noNulls aliases=nn desc='drop null values'"`
	NoEmptyObjects bool `cli:"name=noEmptyObjects aliases=neo desc='drop empty objects'"`
	NoEmptyArrays  bool `cli:"name=noEmptyArrays aliases=nea desc='drop empty arrays'"`

	Keep string `cli:"name=keep desc='keep entries where this expression of key, value holds'"`

	Batch    bool `cli:"name=batch desc='treat input as a document stream'"`
	Parallel int  `cli:"name=p aliases=parallel desc='batch size at which documents run concurrently'"`
	Workers  int  `cli:"name=w aliases=workers desc='max concurrent workers'"`

	KeyRules   []string
	ValueRules []string

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	if !cfg.J && !cfg.Y && cfg.OutFormat == nil {
		of := format.FromPath(a)
		cfg.OutFormat = &of
	}
	return nil, nil
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w; expected one of %s", cli.ErrUsage, err, formatList())
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) ruleFunc(rules *[]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		if !strings.Contains(v, "=") {
			return nil, fmt.Errorf("%w: rule %q is not find=replace", cli.ErrUsage, v)
		}
		*rules = append(*rules, v)
		return v, nil
	})
}

func formatList() string {
	var parts []string
	for _, f := range format.AllFormats() {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, f.Suffix()))
	}
	return strings.Join(parts, ", ")
}

func (cfg *MainConfig) inFormat() format.Format {
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) outFormat() format.Format {
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.JSONFormat
}

// inFormatFor resolves the input format for one argument: explicit
// flags win, then the file's extension.
func (cfg *MainConfig) inFormatFor(arg string) format.Format {
	if cfg.J || cfg.Y || cfg.InFormat != nil || arg == "-" {
		return cfg.inFormat()
	}
	return format.FromPath(arg)
}

func (cfg *MainConfig) parseOptsFor(arg string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormatFor(arg))}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// engineConfig maps the flags onto a flatten.Config for the given
// mode.
func (cfg *MainConfig) engineConfig(mode flatten.Mode) flatten.Config {
	c := flatten.New().WithMode(mode).
		WithLowercaseKeys(cfg.Lower).
		WithAutoConvertTypes(cfg.Types).
		WithHandleKeyCollision(cfg.Collide).
		WithRemoveEmptyStrings(cfg.NoEmptyStrings).
		WithRemoveNulls(cfg.NoNulls).
		WithRemoveEmptyObjects(cfg.NoEmptyObjects).
		WithRemoveEmptyArrays(cfg.NoEmptyArrays)
	if cfg.Sep != "" {
		c = c.WithSeparator(cfg.Sep)
	}
	if cfg.Keep != "" {
		c = c.WithKeepWhere(cfg.Keep)
	}
	if cfg.Parallel > 0 {
		c = c.WithParallelThreshold(cfg.Parallel)
	}
	if cfg.Workers > 0 {
		c = c.WithWorkers(cfg.Workers)
	}
	for _, r := range cfg.KeyRules {
		find, replace, _ := strings.Cut(r, "=")
		c = c.WithKeyRule(find, replace)
	}
	for _, r := range cfg.ValueRules {
		find, replace, _ := strings.Cut(r, "=")
		c = c.WithValueRule(find, replace)
	}
	return c
}

func (cfg *MainConfig) engine(mode flatten.Mode) (*flatten.Engine, error) {
	e, err := cfg.engineConfig(mode).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return e, nil
}

type FlattenConfig struct {
	*MainConfig
	Flatten *cli.Command
}

type UnflattenConfig struct {
	*MainConfig
	Unflatten *cli.Command
}

type TransformConfig struct {
	*MainConfig
	Transform *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig
	AsJSON bool `cli:"name=obj desc='emit the diff as a document instead of text lines'"`

	Diff *cli.Command
}
