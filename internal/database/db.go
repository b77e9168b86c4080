package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var DB *gorm.DB

// InitDB opens the database connection. Dialect is "sqlite3" for a local
// single-station install and "postgres" for a shared multi-station one.
func InitDB(dialect, dsn string) error {
	switch dialect {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("database: unsupported dialect %q", dialect)
	}

	var err error
	DB, err = gorm.Open(dialect, dsn)
	if err != nil {
		return err
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
