package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"

	"github.com/wildstyl3r/grbrate/internal/config"
	"github.com/wildstyl3r/grbrate/internal/logging"
	"github.com/wildstyl3r/grbrate/internal/model"
	"github.com/wildstyl3r/grbrate/internal/utils"
)

var version = "v0.1.0-default"

func main() {
	logging.SetDefault(os.Stderr, "info", false)

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "grbrate",
		Usage:   "evaluate GRB and core-collapse rate density models",
		Version: version,
		Writer:  w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level [debug, info, warn, error]",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored logs",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefault(os.Stderr, cmd.String("log-level"), cmd.Bool("no-color"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "evaluate every model of a configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "model configuration in toml format",
						Value:   "grbrate",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output directory, overrides OutputDir",
					},
				},
				Action: runAction,
			},
			{
				Name:   "forms",
				Usage:  "list the available forms with their parameters and defaults",
				Action: formsAction,
			},
			{
				Name:  "eval",
				Usage: "evaluate one form at the given points",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "form",
						Aliases:  []string{"f"},
						Usage:    "form name, see the forms command",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "set",
						Usage: "parameter override as name=value (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "x",
						Usage: "points to evaluate at (default: the default grid of the form's variable)",
					},
				},
				Action: evalAction,
			},
		},
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	startTime := time.Now()

	cfg, meta, err := config.LoadConfig(cmd.String("input"))
	if err != nil {
		return err
	}
	for _, key := range config.Unknown(&meta) {
		slog.Warn("unknown config key", "key", key)
	}
	if output := cmd.String("output"); output != "" {
		cfg.OutputDir = output
	}

	jobs, problems := cfg.Jobs(&meta)
	for _, problem := range problems {
		slog.Error("skipping model", "error", problem)
	}
	if len(jobs) == 0 {
		return errors.New("no model could be built")
	}

	tables, err := model.Evaluate(ctx, jobs, cfg.Threads)
	if err != nil {
		return err
	}
	for _, t := range tables {
		slog.Debug("evaluated", "model", t.Name, "form", t.Form, "points", len(t.X),
			"peak_"+t.Variable, t.PeakX, "peak_value", t.PeakY)
	}

	if err := model.Save(tables, cfg.OutputDir, cfg.Format); err != nil {
		return err
	}
	slog.Info("done", "models", len(tables), "skipped", len(problems),
		"output", cfg.OutputDir, "elapsed", time.Since(startTime))
	return nil
}

func formsAction(_ context.Context, cmd *cli.Command) error {
	for _, form := range model.Forms() {
		if _, err := fmt.Fprintln(cmd.Root().Writer, form.String()); err != nil {
			return err
		}
	}
	return nil
}

func evalAction(_ context.Context, cmd *cli.Command) error {
	form, err := model.Lookup(cmd.String("form"))
	if err != nil {
		return err
	}

	params := model.Params{}
	for _, kv := range cmd.StringSlice("set") {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.Errorf("parameter override %q must look like name=value", kv)
		}
		params[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	m, err := form.Build(params)
	if err != nil {
		return err
	}

	var xs []float64
	for _, s := range cmd.StringSlice("x") {
		x, err := cast.ToFloat64E(strings.TrimSpace(s))
		if err != nil {
			return errors.Wrapf(err, "invalid point %q", s)
		}
		xs = append(xs, x)
	}
	if len(xs) == 0 {
		if xs, err = config.DefaultGrid(form.Variable).Values(); err != nil {
			return err
		}
	}

	w := cmd.Root().Writer
	if _, err := fmt.Fprintf(w, "# %s %s\n", form.Variable, form.Name); err != nil {
		return err
	}
	for i, y := range model.Eval(m, xs) {
		if _, err := fmt.Fprintf(w, "%s %s\n", utils.FormatFloat(xs[i]), utils.FormatFloat(y)); err != nil {
			return err
		}
	}
	return nil
}
