package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

type MySQLAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewMySQLAdapter() *MySQLAdapter {
	return &MySQLAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (m *MySQLAdapter) Connect(ctx context.Context, url string) error {
	dsn := strings.TrimPrefix(url, "mysql://")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m.db = db
	return nil
}

func (m *MySQLAdapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQLAdapter) InsertReturningID(ctx context.Context, table string, row map[string]any) (int64, error) {
	query, args, err := m.qb.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	result, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateMySQLError(err)
	}
	return result.LastInsertId()
}

func (m *MySQLAdapter) Insert(ctx context.Context, table string, row map[string]any) error {
	query, args, err := m.qb.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return translateMySQLError(err)
	}
	return nil
}

func (m *MySQLAdapter) Update(ctx context.Context, table string, set, where map[string]any) error {
	query, args, err := m.qb.Update(table).SetMap(set).Where(squirrel.Eq(where)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update for %s: %w", table, err)
	}

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return translateMySQLError(err)
	}
	return nil
}

// translateMySQLError maps duplicate-entry errors (1062) to ErrConflict.
func translateMySQLError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%s: %w", mysqlErr.Message, ErrConflict)
	}
	return err
}
