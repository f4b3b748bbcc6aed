// Package sqlstore implements the marketplace stores on PostgreSQL (lib/pq)
// and SQLite (go-sqlite3) behind database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"diamond-exchange/internal/marketerrors"
	"diamond-exchange/internal/repository"
	"diamond-exchange/utils"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - items, status log, auctions, bids, requirements, deals
const currentSchemaVersion = 1

// Dialect names a supported SQL backend
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB is an open marketplace database
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database at dsn. SQLite connections are limited to a
// single writer.
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case Postgres:
		driver = "postgres"
	case SQLite:
		driver = "sqlite3"
	default:
		return nil, fmt.Errorf("sqlstore: unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == SQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
			}
		}
	}
	return &DB{db: db, dialect: dialect}, nil
}

// Close closes the underlying connection pool
func (d *DB) Close() error {
	return d.db.Close()
}

// Dialect reports the backend in use
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Migrate creates the schema if needed and records its version. Safe to run
// repeatedly.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version sql.NullInt64
	if err := d.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}
	if version.Valid && version.Int64 >= currentSchemaVersion {
		return nil
	}
	if _, err := d.db.ExecContext(ctx, d.rebind("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)"),
		currentSchemaVersion, time.Now().UTC()); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	utils.Info("database schema migrated", map[string]any{"dialect": string(d.dialect), "version": currentSchemaVersion})
	return nil
}

// Store returns the stores bound directly to the connection pool. Wrap it in
// repository.NewCompensating for the best-effort tier.
func (d *DB) Store() repository.Store {
	return &store{q: d.db, dialect: d.dialect}
}

// UnitOfWork returns the transactional tier: every unit runs in one database
// transaction, serializable on PostgreSQL.
func (d *DB) UnitOfWork() *UnitOfWork {
	return &UnitOfWork{db: d}
}

// UnitOfWork runs units inside database transactions
type UnitOfWork struct {
	db *DB
}

func (u *UnitOfWork) Do(ctx context.Context, op string, fn func(ctx context.Context, s repository.Store) error) (err error) {
	ctx, span := repository.StartSpan(ctx, op, repository.TierTransactional)
	defer func() { repository.EndSpan(span, err) }()

	var opts *sql.TxOptions
	if u.db.dialect == Postgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	tx, err := u.db.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin %s: %w", op, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, &store{q: tx, dialect: u.db.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			utils.Warn("transaction rollback failed", map[string]any{"operation": op, "error": rbErr.Error()})
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", op, translate(err))
	}
	return nil
}

func (u *UnitOfWork) View(ctx context.Context, fn func(ctx context.Context, s repository.Store) error) error {
	return fn(ctx, u.db.Store())
}

func (u *UnitOfWork) Tier() repository.ConsistencyTier {
	return repository.TierTransactional
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// store implements repository.Store over a queryer
type store struct {
	q       queryer
	dialect Dialect
}

func (d *DB) rebind(query string) string {
	return rebind(d.dialect, query)
}

// rebind rewrites ? placeholders to $n for PostgreSQL
func rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.q.ExecContext(ctx, rebind(s.dialect, query), args...)
	return res, translate(err)
}

func (s *store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.q.QueryContext(ctx, rebind(s.dialect, query), args...)
	return rows, translate(err)
}

func (s *store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.q.QueryRowContext(ctx, rebind(s.dialect, query), args...)
}

// mustAffect reports ErrNotFound when an update or delete matched no row
func mustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, marketerrors.ErrNotFound)
	}
	return nil
}

// translate maps driver errors onto the store error contract. Unique
// violations and serialization failures both become ErrConflict.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%v: %w", err, marketerrors.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "40001", "40P01":
			return fmt.Errorf("%s: %w", pqErr.Message, marketerrors.ErrConflict)
		}
		return err
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w", liteErr.Error(), marketerrors.ErrConflict)
		}
	}
	return err
}

// where accumulates optional equality filters
type where struct {
	conds []string
	args  []any
}

func (w *where) eq(column string, value string) {
	if value == "" {
		return
	}
	w.conds = append(w.conds, column+" = ?")
	w.args = append(w.args, value)
}

func (w *where) raw(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func utc(t time.Time) time.Time {
	return t.UTC()
}
