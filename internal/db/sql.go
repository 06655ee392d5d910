package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type SQLOpts struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// driverNames maps configured drivers to registered database/sql driver names.
var driverNames = map[string]string{
	"mysql":    "mysql",
	"postgres": "pgx",
}

// NewSQLConnection opens a *sqlx.DB for driver ("mysql" or "postgres") with pool/timeouts applied.
func NewSQLConnection(driver, dsn string, opts SQLOpts) (*sqlx.DB, error) {
	name, ok := driverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("empty %s DSN", driver)
	}
	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
