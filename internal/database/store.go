// Package database is the only code that touches storage. Mutating
// operations run through Store.WithTx so they commit or roll back as a unit.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds every statement the application issues. It runs either
// directly on the database or inside a transaction.
type Queries struct {
	q querier
}

// Store is the persistence gateway
type Store struct {
	*Queries
	db *sql.DB
}

// Tx is a Queries bound to an open transaction
type Tx struct {
	*Queries
}

// New wraps an open database handle
func New(db *sql.DB) *Store {
	return &Store{Queries: &Queries{q: db}, db: db}
}

// WithTx runs fn in a transaction. The transaction commits only when fn
// returns nil; any error (or panic) rolls back every statement fn issued.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&Tx{Queries: &Queries{q: sqlTx}}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

type statement struct {
	query string
	args  []any
}

// execAll runs statements in order, stopping at the first failure
func (q *Queries) execAll(ctx context.Context, stmts []statement) error {
	for _, st := range stmts {
		if _, err := q.q.ExecContext(ctx, st.query, st.args...); err != nil {
			return err
		}
	}
	return nil
}

// updateBuilder turns a set of present fields into a parameterized UPDATE.
// Column names come from code, never from input.
type updateBuilder struct {
	table   string
	columns []string
	args    []any
}

func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

func (b *updateBuilder) setString(column string, value *string) {
	if value == nil {
		return
	}
	b.columns = append(b.columns, column+" = ?")
	b.args = append(b.args, *value)
}

func (b *updateBuilder) setInt(column string, value *int) {
	if value == nil {
		return
	}
	b.columns = append(b.columns, column+" = ?")
	b.args = append(b.args, *value)
}

func (b *updateBuilder) empty() bool {
	return len(b.columns) == 0
}

func (b *updateBuilder) build(where string, whereArgs ...any) (string, []any) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", b.table, strings.Join(b.columns, ", "), where)
	args := append(append([]any{}, b.args...), whereArgs...)
	return query, args
}
