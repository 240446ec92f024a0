// Package database opens the MySQL connection pool backing the primary
// data backend.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/ecowave/ecowave-hub/internal/config"
)

// Pool limits sized for the dashboard workload: a handful of concurrent
// admin sessions, not a public API.
const (
	maxOpenConns = 10
	maxIdleConns = 5
	connLifetime = 15 * time.Minute
	pingTimeout  = 5 * time.Second
)

// Open connects to the MySQL instance described by cfg and verifies the
// connection with a bounded ping before returning the pool.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		authority(cfg.DBUser, cfg.DBPass), cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// authority renders the user[:password] part of the DSN. An empty
// password is allowed for local development setups.
func authority(user, pass string) string {
	if pass == "" {
		return user
	}
	return user + ":" + pass
}
