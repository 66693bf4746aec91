package gateway

import (
	"net/url"
	"time"

	"github.com/taskbox/taskbox/internal/cmdflags"
	"github.com/taskbox/taskbox/internal/gateway"
	"github.com/taskbox/taskbox/internal/httpserver"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7330"
	authEndpoint := "http://localhost:7331"
	todoEndpoint := "http://localhost:7332"
	return &cli.Command{
		Name:  "gateway",
		Usage: "Start the edge gateway fronting both services on one origin",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.AuthEndpoint(&authEndpoint),
			&cli.StringFlag{
				Name:        "todo-endpoint",
				Usage:       "Base endpoint of the todo service",
				EnvVars:     []string{"TASKBOX_TODO_ENDPOINT"},
				Value:       todoEndpoint,
				Destination: &todoEndpoint,
			},
		},
		Action: func(ctx *cli.Context) error {
			authURL, err := url.Parse(authEndpoint)
			if err != nil {
				return err
			}
			todoURL, err := url.Parse(todoEndpoint)
			if err != nil {
				return err
			}
			// the gateway only proxies, in-flight requests drain fast
			return httpserver.ServeWithGrace(ctx.Context, bindAddr,
				gateway.AsHandler(authURL, todoURL), 10*time.Second)
		},
	}
}
