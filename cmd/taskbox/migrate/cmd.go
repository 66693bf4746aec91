package migrate

import (
	"fmt"

	"github.com/taskbox/taskbox/account"
	"github.com/taskbox/taskbox/internal/cmdflags"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/taskbox/taskbox/todo"
	"github.com/urfave/cli/v2"
)

// Cmd applies the DDL both services also apply at startup, for
// operators that provision the database ahead of time. The statements
// are IF NOT EXISTS so running it again is harmless.
func Cmd() *cli.Command {
	service := "all"
	var dbcfg cmdflags.DatabaseConfig
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the database tables for one or both services",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "service",
				Usage:       "Which schema to apply: auth, todo or all",
				Value:       service,
				Destination: &service,
			},
		}, cmdflags.Database(&dbcfg)...),
		Action: func(ctx *cli.Context) error {
			db, err := database.Open(ctx.Context, dbcfg.ConnURL())
			if err != nil {
				return err
			}
			defer db.Close()
			switch service {
			case "auth":
				return account.Setup(ctx.Context, db)
			case "todo":
				return todo.Setup(ctx.Context, db)
			case "all":
				if err := account.Setup(ctx.Context, db); err != nil {
					return err
				}
				return todo.Setup(ctx.Context, db)
			}
			return fmt.Errorf("unknown service %v", service)
		},
	}
}
