// Package database owns the SQL connection and the small portability
// layer that lets the same queries run on SQLite, PostgreSQL and
// MySQL/MariaDB.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	mu     sync.RWMutex
	driver = "sqlite3"
)

// Open connects using the given driver name ("sqlite3", "postgres",
// "mysql") and DSN, pings the database and records the driver for
// placeholder conversion.
func Open(driverName, dsn string) (*sql.DB, error) {
	driverName = strings.ToLower(driverName)
	switch driverName {
	case "sqlite3", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driverName, err)
	}

	SetDriver(driverName)
	return db, nil
}

// SetDriver records the active driver. Tests that build their own *sql.DB
// (sqlmock, in-memory sqlite) call this directly.
func SetDriver(name string) {
	mu.Lock()
	driver = strings.ToLower(name)
	mu.Unlock()
}

// Driver returns the active driver name.
func Driver() string {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// IsPostgreSQL returns true if using PostgreSQL.
func IsPostgreSQL() bool {
	return Driver() == "postgres"
}
