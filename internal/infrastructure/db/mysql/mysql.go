package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the MySQL session backend. DSN uses the
// go-sql-driver format, e.g. "user:pass@tcp(localhost:3306)/console".
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a pool, verifies connectivity with a ping and creates the
// session table if it does not exist yet.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}
	dc.ParseTime = true
	dc.Timeout = timeout
	dc.ReadTimeout = timeout
	dc.WriteTimeout = timeout

	connector, err := mysql.NewConnector(dc)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxIdleConns(5)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	if _, err := db.ExecContext(pingCtx, createSessionTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql create %s: %w", sessionTable, err)
	}
	return db, nil
}
