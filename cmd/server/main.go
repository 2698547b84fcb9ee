package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/multisweeper/internal/app"
	"github.com/vancomm/multisweeper/internal/config"
	"github.com/vancomm/multisweeper/internal/logging"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	opts, err := config.ParseOptions(os.Args[1:])
	if err != nil {
		var ce config.ConfigError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.Error())
			fmt.Fprintln(os.Stderr, config.Usage)
			os.Exit(exitUsage)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	env := config.LoadEnvironment()
	log, err := logging.New(os.Stderr, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	log.WithFields(opts.Fields()).Debug("options")
	log.WithFields(env.Fields()).Debug("environment")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := app.New(log, *opts, env).Start(ctx); err != nil {
		log.WithError(err).Error("server failed")
		stop()
		os.Exit(exitFailure)
	}

	log.Info("server stopped")
}
