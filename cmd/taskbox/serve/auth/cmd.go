package auth

import (
	"github.com/taskbox/taskbox/account"
	"github.com/taskbox/taskbox/account/api"
	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/cmdflags"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/taskbox/taskbox/internal/httpserver"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7331"
	var dbcfg cmdflags.DatabaseConfig
	var secretEnvVar string
	return &cli.Command{
		Name:  "auth",
		Usage: "Start the account service (registration, login, token issue/verify)",
		Flags: append([]cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.TokenSecretEnvVar(&secretEnvVar),
		}, cmdflags.Database(&dbcfg)...),
		Action: func(ctx *cli.Context) error {
			secret, err := token.SecretFromEnv(secretEnvVar, nil, nil)
			if err != nil {
				return err
			}
			db, err := database.Open(ctx.Context, dbcfg.ConnURL())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := account.Setup(ctx.Context, db); err != nil {
				return err
			}
			handler := api.AsHandler(db, account.NewStore(db),
				token.NewIssuer(secret), token.NewVerifier(secret))
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
