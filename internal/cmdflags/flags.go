package cmdflags

import (
	"time"

	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/urfave/cli/v2"
)

type (
	// DatabaseConfig collects the connection settings once per
	// command, either a full URL or the individual pieces.
	DatabaseConfig struct {
		URL      string
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}
)

// ConnURL resolves the configured settings into a single connection
// url, the explicit --database-url winning over the composed parts.
func (d DatabaseConfig) ConnURL() string {
	if d.URL != "" {
		return d.URL
	}
	return database.PostgresURL(d.Host, d.Port, d.User, d.Password, d.Name)
}

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Usage:       "Address to bind for incoming requests",
		EnvVars:     []string{"TASKBOX_BIND"},
		Value:       *out,
		Destination: out,
	}
}

func Database(out *DatabaseConfig) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-url",
			Usage:       "Full database connection url (postgres://... or sqlite://path), overrides the db-* flags",
			EnvVars:     []string{"TASKBOX_DATABASE_URL"},
			Value:       out.URL,
			Destination: &out.URL,
		},
		&cli.StringFlag{
			Name:        "db-host",
			Usage:       "Database host",
			EnvVars:     []string{"TASKBOX_DB_HOST"},
			Value:       "localhost",
			Destination: &out.Host,
		},
		&cli.IntFlag{
			Name:        "db-port",
			Usage:       "Database port",
			EnvVars:     []string{"TASKBOX_DB_PORT"},
			Value:       5432,
			Destination: &out.Port,
		},
		&cli.StringFlag{
			Name:        "db-user",
			Usage:       "Database user",
			EnvVars:     []string{"TASKBOX_DB_USER"},
			Destination: &out.User,
		},
		&cli.StringFlag{
			Name:        "db-password",
			Usage:       "Database password",
			EnvVars:     []string{"TASKBOX_DB_PASSWORD"},
			Destination: &out.Password,
		},
		&cli.StringFlag{
			Name:        "db-name",
			Usage:       "Database name",
			EnvVars:     []string{"TASKBOX_DB_NAME"},
			Destination: &out.Name,
		},
	}
}

func TokenSecretEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = token.DefaultSecretEnvVar
	}
	return &cli.StringFlag{
		Name:        "token-secret-envvar-name",
		Usage:       "Name of the environment variable that holds the token signing secret. The secret itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func AuthEndpoint(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "auth-endpoint",
		Usage:       "Base endpoint of the account service",
		EnvVars:     []string{"TASKBOX_AUTH_ENDPOINT"},
		Value:       *out,
		Destination: out,
	}
}

func VerifyTimeout(out *time.Duration) cli.Flag {
	return &cli.DurationFlag{
		Name:        "verify-timeout",
		Usage:       "Upper bound for the token verification round-trip against the account service",
		EnvVars:     []string{"TASKBOX_VERIFY_TIMEOUT"},
		Value:       *out,
		Destination: out,
	}
}
