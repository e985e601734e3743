// Package storage реализует хранилище пользователей и журнала расходов
// поверх database/sql. Основная СУБД — PostgreSQL (драйвер pgx), для локальной
// разработки поддерживается SQLite (modernc.org/sqlite).
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect — имя драйвера database/sql, с которым работает хранилище.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite"
)

var (
	// ErrUserExists возвращается при попытке занять существующее имя пользователя.
	ErrUserExists = errors.New("user already exists")
	// ErrMissingUserScope возвращается, если фильтр поиска не ограничен пользователем.
	ErrMissingUserScope = errors.New("filter is not scoped to a user")
	// ErrUnsupportedConnString — строка подключения не распознана.
	ErrUnsupportedConnString = errors.New("unsupported connection string")
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Storage инкапсулирует пул соединений и диалект SQL.
type Storage struct {
	DB      *sql.DB
	dialect Dialect
}

// ParseConnString определяет драйвер по строке подключения и возвращает DSN для него.
//
//	postgres://…, postgresql://… — PostgreSQL, строка передаётся как есть;
//	sqlite://path, sqlite:///path, file:path — SQLite.
func ParseConnString(conn string) (Dialect, string, error) {
	const op = "storage.ParseConnString"

	switch {
	case strings.HasPrefix(conn, "postgres://"), strings.HasPrefix(conn, "postgresql://"):
		return DialectPostgres, conn, nil
	case strings.HasPrefix(conn, "sqlite://"):
		path := strings.TrimPrefix(conn, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return "", "", fmt.Errorf("%s: %w: empty sqlite path", op, ErrUnsupportedConnString)
		}
		return DialectSQLite, withPragmas(path), nil
	case strings.HasPrefix(conn, "file:"):
		return DialectSQLite, withPragmas(conn), nil
	}
	return "", "", fmt.Errorf("%s: %w: %q", op, ErrUnsupportedConnString, redact(conn))
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

func redact(conn string) string {
	if i := strings.Index(conn, "://"); i >= 0 {
		return conn[:i+3] + "…"
	}
	return "…"
}

// New открывает подключение по строке conn и проверяет его.
func New(conn string) (*Storage, error) {
	const op = "storage.New"

	dialect, dsn, err := ParseConnString(conn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db, dialect), nil
}

// NewWithDB оборачивает уже открытый пул.
func NewWithDB(db *sql.DB, dialect Dialect) *Storage {
	return &Storage{DB: db, dialect: dialect}
}

// Dialect возвращает диалект хранилища.
func (s *Storage) Dialect() Dialect {
	return s.dialect
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// rebind переписывает плейсхолдеры "?" в "$N" для PostgreSQL.
func (s *Storage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
