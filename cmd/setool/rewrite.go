package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/setools/internal/config"
	"github.com/Faultbox/setools/internal/logger"
)

// rewriteOptions overrides document settings before re-encoding.
type rewriteOptions struct {
	highPrecision *bool
	boneMode      string
}

func rewriteCmd() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Decode a file and encode it again, optionally changing settings",
		ArgsUsage: "<in> <out>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "high-precision", Usage: "SEAnim: store key values as float64"},
			&cli.StringFlag{Name: "bone-mode", Usage: "SEModel: locals, globals or both"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 2 {
				return fmt.Errorf("usage: setool rewrite <in> <out>")
			}

			// Config file values, then flags
			opts := rewriteOptions{
				highPrecision: appConfig.Anim.HighPrecision,
				boneMode:      appConfig.Model.BoneMode,
			}
			if cmd.IsSet("high-precision") {
				hp := cmd.Bool("high-precision")
				opts.highPrecision = &hp
			}
			if cmd.IsSet("bone-mode") {
				opts.boneMode = cmd.String("bone-mode")
			}

			return rewrite(cmd.Args().Get(0), cmd.Args().Get(1), opts)
		},
	}
}

func rewrite(in, out string, opts rewriteOptions) error {
	doc, err := openDocument(in)
	if err != nil {
		return err
	}

	if doc.anim != nil && opts.highPrecision != nil {
		doc.anim.HighPrecision = *opts.highPrecision
	}
	if doc.model != nil && opts.boneMode != "" {
		mode, ok := config.ParseBoneMode(opts.boneMode)
		if !ok {
			return fmt.Errorf("invalid bone mode %q", opts.boneMode)
		}
		doc.model.BoneMode = mode
	}

	if err := doc.writeFile(out); err != nil {
		return err
	}

	logger.Info("rewrote file",
		zap.String("in", in),
		zap.String("out", out),
		zap.Stringer("kind", doc.kind),
	)
	return nil
}
