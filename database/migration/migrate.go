// Package migration applies versioned SQL migrations shipped inside the
// binary. Files follow golang-migrate naming: VERSION_name.up.sql and
// VERSION_name.down.sql.
//
//	//go:embed migrations/*.sql
//	var migrationsFS embed.FS
//
//	err := migration.Up(db.GormDB, migrationsFS, "migrations", migration.SQLite)
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// DriverFunc creates a migrate database driver from sql.DB.
type DriverFunc func(*sql.DB) (database.Driver, error)

// SQLite is the DriverFunc for databases opened with the sqlite dialector.
func SQLite(db *sql.DB) (database.Driver, error) {
	return sqlite3.WithInstance(db, &sqlite3.Config{})
}

// Up runs all pending migrations. Having nothing to apply is not an error.
func Up(gormDB *gorm.DB, fsys fs.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, fsys, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back all applied migrations.
func Down(gormDB *gorm.DB, fsys fs.FS, path string, driverFunc DriverFunc) error {
	m, err := newMigrator(gormDB, fsys, path, driverFunc)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty flag. A database
// without migrations reports version 0.
func Version(gormDB *gorm.DB, fsys fs.FS, path string, driverFunc DriverFunc) (version uint, dirty bool, err error) {
	m, err := newMigrator(gormDB, fsys, path, driverFunc)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrator creates a golang-migrate instance backed by fsys.
// Callers must NOT call m.Close(): it would close the shared sql.DB.
func newMigrator(gormDB *gorm.DB, fsys fs.FS, path string, driverFunc DriverFunc) (*migrate.Migrate, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := driverFunc(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	source, err := iofs.New(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
