package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/UnknownOlympus/hestia/internal/config"
)

// ConnectTimeout bounds connection establishment.
const ConnectTimeout = 5 * time.Second

// Conn is the subset of *pgx.Conn the repository needs. pgxmock.PgxConnIface satisfies it too.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connector opens a new database connection on every call.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context) (Conn, error)

func (f ConnectorFunc) Connect(ctx context.Context) (Conn, error) {
	return f(ctx)
}

// NewConnector returns a Connector that dials a fresh connection for the given settings.
func NewConnector(cfg config.DatabaseConfig) Connector {
	dbURL := DatabaseURL(cfg)

	return ConnectorFunc(func(ctx context.Context) (Conn, error) {
		connConfig, err := pgx.ParseConfig(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}
		connConfig.ConnectTimeout = ConnectTimeout

		conn, err := pgx.ConnectConfig(ctx, connConfig)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}

		return conn, nil
	})
}

// DatabaseURL builds the connection string from the configured settings.
// Credentials are escaped so passwords with reserved characters survive.
func DatabaseURL(cfg config.DatabaseConfig) string {
	dbURL := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}

	return dbURL.String()
}
