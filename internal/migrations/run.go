// Package migrations применяет встроенные SQL-миграции схемы
// (таблицы users и expense) для PostgreSQL и SQLite.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Драйверы database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Имена драйверов database/sql, для которых есть миграции.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var migrationsFS embed.FS

// Run применяет все миграции для драйвера driverName к базе dsn.
// Для миграций открывается отдельное соединение, которое закрывается по завершении.
func Run(driverName, dsn string) error {
	const op = "migrations.Run"

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var (
		driver database.Driver
		dir    string
	)
	switch driverName {
	case DriverPostgres:
		driver, err = pgxv5.WithInstance(db, &pgxv5.Config{})
		dir = "sql/postgres"
	case DriverSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
		dir = "sql/sqlite"
	default:
		err = fmt.Errorf("unsupported driver %q", driverName)
	}
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
