// Package db provides database connection functionality for the refpin server.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteFile is the sqlite database created when no DSN is supplied.
const DefaultSQLiteFile = "refpin.db"

// NewDBConnection connects to the database identified by dsn.
// An empty dsn falls back to a local sqlite file, which is ideal for running
// refpin locally. A postgres:// DSN connects to Postgres.
func NewDBConnection(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch {
	case dsn == "":
		conn, err = gorm.Open(sqlite.Open(DefaultSQLiteFile), cfg)
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		// treat anything else as a sqlite file path
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}
