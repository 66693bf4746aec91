package serve

import (
	"github.com/taskbox/taskbox/cmd/taskbox/serve/auth"
	"github.com/taskbox/taskbox/cmd/taskbox/serve/gateway"
	"github.com/taskbox/taskbox/cmd/taskbox/serve/todo"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Root command to start the taskbox services",
		Subcommands: []*cli.Command{
			auth.Cmd(),
			todo.Cmd(),
			gateway.Cmd(),
		},
	}
}
