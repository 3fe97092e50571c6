package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func TestTranslatePgError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if !errors.Is(translatePgError(unique), ErrConflict) {
		t.Error("Expected a 23505 error to map to ErrConflict")
	}

	fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	if errors.Is(translatePgError(fk), ErrConflict) {
		t.Error("Expected a foreign-key violation to stay fatal")
	}

	plain := fmt.Errorf("connection refused")
	if translatePgError(plain) != plain {
		t.Error("Expected non-postgres errors to pass through unmodified")
	}
}

func TestTranslateMySQLError(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !errors.Is(translateMySQLError(dup), ErrConflict) {
		t.Error("Expected error 1062 to map to ErrConflict")
	}

	other := &mysql.MySQLError{Number: 1054, Message: "Unknown column"}
	if errors.Is(translateMySQLError(other), ErrConflict) {
		t.Error("Expected non-duplicate MySQL errors to stay fatal")
	}
}

func TestTranslateSQLiteError(t *testing.T) {
	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	if !errors.Is(translateSQLiteError(unique), ErrConflict) {
		t.Error("Expected a unique-constraint error to map to ErrConflict")
	}

	pk := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}
	if !errors.Is(translateSQLiteError(pk), ErrConflict) {
		t.Error("Expected a primary-key-constraint error to map to ErrConflict")
	}

	notNull := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}
	if errors.Is(translateSQLiteError(notNull), ErrConflict) {
		t.Error("Expected a not-null-constraint error to stay fatal")
	}
}

func TestNewAdapterProviders(t *testing.T) {
	if _, ok := NewAdapter("postgresql").(*PostgresAdapter); !ok {
		t.Error("Expected a PostgresAdapter for 'postgresql'")
	}
	if _, ok := NewAdapter("mysql").(*MySQLAdapter); !ok {
		t.Error("Expected a MySQLAdapter for 'mysql'")
	}
	if _, ok := NewAdapter("sqlite").(*SQLiteAdapter); !ok {
		t.Error("Expected a SQLiteAdapter for 'sqlite'")
	}
	if _, ok := NewAdapter("unknown").(*PostgresAdapter); !ok {
		t.Error("Expected the default adapter to be postgres")
	}
}
