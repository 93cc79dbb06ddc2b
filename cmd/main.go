package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"kemet/internal"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// newApp hands the raw tokens to ParseConfig; the option grammar and its
// error messages are ours, urfave only owns the process lifecycle.
func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:            "kemet",
		Usage:           "Search text in files under a directory tree",
		HideHelp:        true,
		HideHelpCommand: true,
		SkipFlagParsing: true,
		Writer:          stdout,
		Action: func(c *cli.Context) error {
			return run(c.Context, c.Args().Slice(), stdout)
		},
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := internal.ParseConfig(args)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := internal.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logrus.WithFields(logrus.Fields{"root": cfg.Root, "output": cfg.OutputFile}).Info("kemet started")

	rep, err := internal.NewReporter(cfg, stdout)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	state, err := internal.NewFileScanner().Scan(ctx, cfg)
	if err != nil {
		_ = rep.Close()
		return cli.Exit(fmt.Sprintf("Search failed: %v", err), 1)
	}
	if err := rep.Report(cfg, state); err != nil {
		_ = rep.Close()
		return cli.Exit(fmt.Sprintf("Search failed: %v", err), 1)
	}
	if err := rep.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("Search failed: %v", err), 1)
	}
	return nil
}
