package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		{
			Name:        "k",
			Aliases:     []string{"key"},
			Description: "key replacement rule, find=replace, regex: prefix for patterns",
			Type:        cli.NamedFuncOpt(cfg.ruleFunc(&cfg.KeyRules), "(find=replace)"),
		},
		{
			Name:        "v",
			Aliases:     []string{"value"},
			Description: "value replacement rule, find=replace, regex: prefix for patterns",
			Type:        cli.NamedFuncOpt(cfg.ruleFunc(&cfg.ValueRules), "(find=replace)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "fk").
		WithSynopsis("fk [opts] command [opts]").
		WithDescription("fk flattens, unflattens and transforms structured documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fkMain(cfg, cc, args)
		}).
		WithSubs(
			FlattenCommand(cfg),
			UnflattenCommand(cfg),
			TransformCommand(cfg),
			ConvertCommand(cfg),
			DiffCommand(cfg))
}

func FlattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FlattenConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Flatten, "flatten").
		WithAliases("f", "fl").
		WithSynopsis("flatten [files]").
		WithDescription("flatten nested documents to separator-joined keys").
		WithRun(func(cc *cli.Context, args []string) error {
			return flattenRun(cfg, cc, args)
		})
}

func UnflattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UnflattenConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Unflatten, "unflatten").
		WithAliases("u", "un").
		WithSynopsis("unflatten [files]").
		WithDescription("rebuild nested documents from flat keys").
		WithRun(func(cc *cli.Context, args []string) error {
			return unflattenRun(cfg, cc, args)
		})
}

func TransformCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TransformConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Transform, "transform").
		WithAliases("t", "tr").
		WithSynopsis("transform [files]").
		WithDescription("apply coercion, replacements and filters without flattening").
		WithRun(func(cc *cli.Context, args []string) error {
			return transformRun(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "co").
		WithSynopsis("convert [files]").
		WithDescription("convert documents between formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return convertRun(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff <from> <to>").
		WithDescription("compare two documents in flat form").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffRun(cfg, cc, args)
		})
}
