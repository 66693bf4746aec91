package todo

import (
	"github.com/taskbox/taskbox/account/client"
	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/cmdflags"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/taskbox/taskbox/internal/httpserver"
	"github.com/taskbox/taskbox/todo"
	"github.com/taskbox/taskbox/todo/api"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7332"
	authEndpoint := "http://localhost:7331"
	verifyTimeout := client.DefaultTimeout
	localVerify := false
	var dbcfg cmdflags.DatabaseConfig
	var secretEnvVar string
	return &cli.Command{
		Name:  "todo",
		Usage: "Start the todo service (per-user task records)",
		Flags: append([]cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.AuthEndpoint(&authEndpoint),
			cmdflags.VerifyTimeout(&verifyTimeout),
			&cli.BoolFlag{
				Name:        "local-verify",
				Usage:       "Verify tokens in-process with the shared signing secret instead of calling the account service",
				EnvVars:     []string{"TASKBOX_LOCAL_VERIFY"},
				Destination: &localVerify,
			},
			cmdflags.TokenSecretEnvVar(&secretEnvVar),
		}, cmdflags.Database(&dbcfg)...),
		Action: func(ctx *cli.Context) error {
			var verifier api.TokenVerifier
			if localVerify {
				secret, err := token.SecretFromEnv(secretEnvVar, nil, nil)
				if err != nil {
					return err
				}
				verifier = token.NewVerifier(secret)
			} else {
				verifier = client.New(authEndpoint, verifyTimeout)
			}
			db, err := database.Open(ctx.Context, dbcfg.ConnURL())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := todo.Setup(ctx.Context, db); err != nil {
				return err
			}
			handler := api.AsHandler(db, todo.NewStore(db), verifier)
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
