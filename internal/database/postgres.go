package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAdapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PostgresAdapter) Connect(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	p.pool = pool
	return nil
}

func (p *PostgresAdapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *PostgresAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresAdapter) InsertReturningID(ctx context.Context, table string, row map[string]any) (int64, error) {
	query, args, err := p.qb.Insert(table).SetMap(row).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	var id int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translatePgError(err)
	}
	return id, nil
}

func (p *PostgresAdapter) Insert(ctx context.Context, table string, row map[string]any) error {
	query, args, err := p.qb.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (p *PostgresAdapter) Update(ctx context.Context, table string, set, where map[string]any) error {
	query, args, err := p.qb.Update(table).SetMap(set).Where(squirrel.Eq(where)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update for %s: %w", table, err)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}

// translatePgError maps unique violations (SQLSTATE 23505) to ErrConflict.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pgErr.Message, ErrConflict)
	}
	return err
}
