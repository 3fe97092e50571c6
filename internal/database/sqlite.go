package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
)

type SQLiteAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *SQLiteAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", url)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteAdapter) InsertReturningID(ctx context.Context, table string, row map[string]any) (int64, error) {
	query, args, err := s.qb.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateSQLiteError(err)
	}
	return result.LastInsertId()
}

func (s *SQLiteAdapter) Insert(ctx context.Context, table string, row map[string]any) error {
	query, args, err := s.qb.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

func (s *SQLiteAdapter) Update(ctx context.Context, table string, set, where map[string]any) error {
	query, args, err := s.qb.Update(table).SetMap(set).Where(squirrel.Eq(where)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update for %s: %w", table, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

// translateSQLiteError maps unique/primary-key constraint violations to
// ErrConflict.
func translateSQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%v: %w", sqliteErr, ErrConflict)
		}
	}
	return err
}
