package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/dustin-ward/dustinw-qc/compiler"
	"github.com/dustin-ward/dustinw-qc/compiler/format"
	"github.com/dustin-ward/dustinw-qc/compiler/parse"
	"github.com/dustin-ward/dustinw-qc/config"
)

func main() {
	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print tokens of the files",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print parsed programs",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "translate to native gates and optimize",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("config", "", "yaml config file"),
			cli.NewFlag("rounds", 0, "max optimization rounds (0 means config or default)"),
			cli.NewFlag("tolerance", "", "native angle tolerance"),
			cli.NewFlag("strict", false, "stop only when a round leaves the program unchanged"),
			cli.NewFlag("stats", false, "print per round statistics"),
			cli.NewFlag("report", false, "print input and output side by side"),
		},
	}

	app := &cli.Command{
		Name:        "qc",
		Description: "qc is a peephole optimizer for RX/RZ/CZ/MEASURE programs",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("log", "stderr", "log output file (or stderr)"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			tokensCmd,
			parseCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	var w io.Writer = os.Stderr

	if name := c.String("log"); name != "" && name != "stderr" {
		f, err := os.Create(name)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}

		w = f
	}

	tlog.DefaultLogger = tlog.New(tlog.NewConsoleWriter(w, tlog.LstdFlags))

	if v := c.String("verbosity"); v != "" {
		tlog.SetVerbosity(v)
	}

	return nil
}

func tokensAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		toks, err := parse.Lex(ctx, text)
		if err != nil {
			return errors.Wrap(err, "lex %v", a)
		}

		for _, t := range toks {
			fmt.Printf("%v\n", t)
		}
	}

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		p, err := parse.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		fmt.Printf("%s", format.String(p))
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if cfg.Verbosity != "" && c.String("verbosity") == "" {
		tlog.SetVerbosity(cfg.Verbosity)
	}

	for _, a := range c.Args {
		u, err := compiler.OptimizeFile(ctx, a, cfg.Options()...)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		if c.Bool("report") {
			fmt.Printf("%s\n", format.Diff(u.Input, u.Result.Program))
		} else {
			obj, err := u.Text(ctx)
			if err != nil {
				return errors.Wrap(err, "format %v", a)
			}

			fmt.Printf("%s", obj)
		}

		if c.Bool("stats") {
			err = format.RoundsTable(os.Stdout, u.Result)
			if err != nil {
				return errors.Wrap(err, "print stats")
			}
		}
	}

	return nil
}

// loadConfig reads the config file if given and applies flags on top of it.
func loadConfig(c *cli.Command) (cfg config.Config, err error) {
	cfg = config.Default()

	if name := c.String("config"); name != "" {
		cfg, err = config.Load(name)
		if err != nil {
			return cfg, errors.Wrap(err, "load config")
		}
	}

	if n := c.Int("rounds"); n != 0 {
		cfg.MaxRounds = n
	}

	if s := c.String("tolerance"); s != "" {
		cfg.NativeTolerance, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return cfg, errors.Wrap(err, "parse tolerance")
		}
	}

	if c.Bool("strict") {
		cfg.StrictConvergence = true
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}

	return cfg, nil
}
