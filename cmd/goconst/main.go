// Package main generates client artifacts from Go string constant vocabularies.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/goconst/internal/platform/cmd"
	"github.com/louisbranch/goconst/internal/platform/config"
	apperrors "github.com/louisbranch/goconst/internal/platform/errors"
	"github.com/louisbranch/goconst/internal/tools/goconst"
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		_, _ = out.Write([]byte("usage: goconst -type T[,U...] [-out file] [-format ts|md|sql] [-emit value|name] [-name base] [packages]\n"))
		flag.PrintDefaults()
	}
	cfg, err := goconst.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceGoconst, func(ctx context.Context) error {
		return goconst.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		stop()
		message, code := apperrors.Describe(err)
		config.ExitCodef(code, "Error: %s", message)
	}
}
