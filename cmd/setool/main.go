// setool is a CLI utility for inspecting and rewriting SEAnim and SEModel files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/setools/internal/config"
	"github.com/Faultbox/setools/internal/logger"
)

// appConfig is loaded once in the root Before hook.
var appConfig = config.Default()

func main() {
	app := &cli.Command{
		Name:  "setool",
		Usage: "Inspect and rewrite SEAnim / SEModel files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
		},
		Before: setup,
		After: func(ctx context.Context, cmd *cli.Command) error {
			logger.Sync()
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			dumpCmd(),
			rewriteCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration (defaults < file < flags) and starts logging.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	if cmd.IsSet("log-file") {
		cfg.Logging.LogFile = cmd.String("log-file")
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return ctx, fmt.Errorf("initializing logger: %w", err)
	}
	appConfig = cfg
	return ctx, nil
}
