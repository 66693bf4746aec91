package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/taskbox/taskbox/cmd/taskbox/migrate"
	"github.com/taskbox/taskbox/cmd/taskbox/serve"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskbox",
		Usage: "Account and todo services behind one binary",
		Commands: []*cli.Command{
			serve.Cmd(),
			migrate.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
