// Package quotarepository keeps the daily execution counter in PostgreSQL
package quotarepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
	querybuilder "gitlab.com/algotutor.net/internal/utils"
)

var (
	_ secondary.QuotaStore  = (*QuotaRepository)(nil)
	_ secondary.QuotaPruner = (*QuotaRepository)(nil)
)

// QuotaRepository implements the QuotaStore interface with PostgreSQL
type QuotaRepository struct {
	db     *sqlx.DB
	schema string
	logger primary.Logger
	ready  atomic.Bool
}

// NewQuotaRepository creates a new PostgreSQL quota repository
func NewQuotaRepository(db *sqlx.DB, schema string, logger primary.Logger) *QuotaRepository {
	return &QuotaRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

func (r *QuotaRepository) tableName() string {
	tbl := domain.GetQuotaTable()
	if r.schema == "" {
		return tbl.TableName()
	}
	return fmt.Sprintf("%s.%s", r.schema, tbl.TableName())
}

// EnsureSchema creates the quota table when it does not exist yet.
// Every query retries it until it has succeeded once.
func (r *QuotaRepository) EnsureSchema(ctx context.Context) error {
	if r.ready.Load() {
		return nil
	}

	tbl := domain.GetQuotaTable()
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s DATE PRIMARY KEY, %s INTEGER NOT NULL DEFAULT 0)`,
		r.tableName(), tbl.Day, tbl.Used)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to create quota table", "table", r.tableName(), "error", err)
		return fmt.Errorf("failed to create quota table: %w", err)
	}
	r.ready.Store(true)
	return nil
}

// Consume increments the counter of day in a single upsert guarded by the limit.
// An upsert that updates no row means the limit was already reached.
func (r *QuotaRepository) Consume(ctx context.Context, day string, limit int) (int, bool, error) {
	if limit <= 0 {
		used, err := r.Used(ctx, day)
		return used, false, err
	}
	if err := r.EnsureSchema(ctx); err != nil {
		return 0, false, err
	}

	tbl := domain.GetQuotaTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Day, tbl.Used).
		Into(tbl.TableName()).
		Values(day, 1).
		OnConflict(tbl.Day).
		DoUpdate(fmt.Sprintf("%[1]s = %[2]s.%[1]s + 1 WHERE %[2]s.%[1]s < ?", tbl.Used, tbl.TableName()), limit).
		Returning(tbl.Used).
		Build()

	var used int
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		current, usedErr := r.Used(ctx, day)
		return current, false, usedErr
	}
	if err != nil {
		r.logger.Error("Failed to consume quota", "day", day, "error", err)
		return 0, false, fmt.Errorf("failed to consume quota: %w", err)
	}

	return used, true, nil
}

// Used returns the counter of day, zero when no row exists
func (r *QuotaRepository) Used(ctx context.Context, day string) (int, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	tbl := domain.GetQuotaTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Used).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.Day), day).
		Build()

	var used int
	err := r.db.GetContext(ctx, &used, r.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		r.logger.Error("Failed to read quota", "day", day, "error", err)
		return 0, fmt.Errorf("failed to read quota: %w", err)
	}
	return used, nil
}

// Prune deletes every row strictly older than before
func (r *QuotaRepository) Prune(ctx context.Context, before string) (int, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	tbl := domain.GetQuotaTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s < ?", tbl.Day), before).
		Build()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		r.logger.Error("Failed to prune quota", "before", before, "error", err)
		return 0, fmt.Errorf("failed to prune quota: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune quota: %w", err)
	}
	return int(affected), nil
}
