package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type (
	Driver string

	// DB wraps the sql pool with the driver it was opened with,
	// so queries written with '?' placeholders can be rebound
	// without consulting ambient state.
	DB struct {
		*sql.DB
		driver Driver
	}
)

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite3"
)

// ParseDSN maps a connection URL to a registered driver and its
// native DSN. postgres:// and postgresql:// go to pgx, sqlite://
// and bare paths go to sqlite3.
func ParseDSN(connURL string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(connURL, "postgres://"), strings.HasPrefix(connURL, "postgresql://"):
		return DriverPostgres, connURL, nil
	case strings.HasPrefix(connURL, "sqlite://"):
		path := strings.TrimPrefix(connURL, "sqlite://")
		return DriverSQLite, fmt.Sprintf("file:%v?_journal=wal&mode=rwc", path), nil
	case connURL == "":
		return "", "", fmt.Errorf("database: empty connection url")
	}
	if u, err := url.Parse(connURL); err == nil && u.Scheme != "" && u.Scheme != "file" {
		return "", "", fmt.Errorf("database: unsupported scheme %v", u.Scheme)
	}
	// bare path, treat as a sqlite file
	return DriverSQLite, fmt.Sprintf("file:%v?_journal=wal&mode=rwc", connURL), nil
}

// PostgresURL composes a postgres connection url from its parts,
// for deployments that configure the pieces individually.
func PostgresURL(host string, port int, user, password, name string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%v:%v", host, port),
		User:   url.UserPassword(user, password),
		Path:   "/" + name,
	}
	return u.String()
}

// Open connects to the database behind connURL, bounds the pool and
// pings before handing the pool out. Callers own Close.
func Open(ctx context.Context, connURL string) (*DB, error) {
	driver, dsn, err := ParseDSN(connURL)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("database: unable to open %v connection, cause %w", driver, err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxIdleTime(time.Minute * 5)
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("database: unable to ping database, cause %w", err)
	}
	return &DB{DB: conn, driver: driver}, nil
}

func (d *DB) Driver() Driver { return d.driver }

// Healthy reports whether the pool can still reach the database.
func (d *DB) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second*2)
	defer cancel()
	return d.PingContext(ctx) == nil
}
