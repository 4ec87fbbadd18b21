package repositories

import (
	"context"
	"fmt"

	"github.com/campusdesk/academics/internal/db"
	"github.com/campusdesk/academics/internal/pkg/logger"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
	"github.com/jackc/pgx/v5"
)

// QueryLimits bounds the page size of every list endpoint.
type QueryLimits struct {
	DefaultLimit int
	MaxLimit     int
}

// runList executes a composed list query: the total over the filtered set, then the
// requested page scanned by column name. Fields projected out stay at their zero value.
func runList[T any](ctx context.Context, q db.DBTX, spec querybuilder.QuerySpec) ([]T, querybuilder.Pagination, error) {
	pagination := spec.Pagination

	countSQL, countArgs, err := spec.Count.ToSql()
	if err != nil {
		return nil, pagination, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("sql", countSQL).Msg("Error executing count query")
		return nil, pagination, fmt.Errorf("error counting rows: %w", err)
	}
	pagination.Resolve(total)

	sql, args, err := spec.Select.ToSql()
	if err != nil {
		return nil, pagination, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sql", sql).Msg("Error executing list query")
		return nil, pagination, fmt.Errorf("error listing rows: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, pagination, fmt.Errorf("error scanning rows: %w", err)
	}
	return items, pagination, nil
}

// getOne runs a single-row query and scans it by column name.
func getOne[T any](ctx context.Context, q db.DBTX, sql string, args []any) (*T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return nil, err
	}
	return item, nil
}
