package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	civetdocs "github.com/idaholab/civet-docs"
	"github.com/idaholab/civet-docs/flags"
	"github.com/idaholab/civet-docs/metrics"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "civet-docs"
	app.Usage = "CIVET test result documentation builder"
	app.Description = "civet-docs collects CIVET continuous-integration results and renders them into a documentation site as badges and report pages"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if civetdocs.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), 2))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), 1))
			}
		}
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	log, err := newLogger(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return civetdocs.NewRuntimeError(err)
	}
	slog.SetDefault(log)

	cfg, err := civetdocs.LoadConfig(ctx.String(flags.Config.Name), os.Getenv)
	if err != nil {
		return civetdocs.NewRuntimeError(err)
	}
	if ctx.IsSet(flags.SiteDir.Name) {
		cfg.SiteDir = ctx.String(flags.SiteDir.Name)
	}
	if ctx.IsSet(flags.DestDir.Name) {
		cfg.DestDir = ctx.String(flags.DestDir.Name)
	}
	if ctx.IsSet(flags.Download.Name) {
		cfg.DownloadTestResults = ctx.Bool(flags.Download.Name)
	}
	if ctx.IsSet(flags.Reports.Name) {
		cfg.GenerateTestReports = ctx.Bool(flags.Reports.Name)
	}

	if addr := ctx.String(flags.MetricsAddr.Name); addr != "" {
		srv := metrics.StartServer(log, addr)
		defer srv.Close()
		log.Info("serving metrics", "addr", addr)
	}

	return civetdocs.New(cfg, log, os.Getenv).Run(ctx.Context)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
