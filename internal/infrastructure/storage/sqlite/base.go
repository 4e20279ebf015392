package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

// BaseRepo provides common CRUD operations for one record kind.
// Embed this in specific repositories.
type BaseRepo[T entity.Record[T]] struct {
	table string
	cols  []string
	txm   *TxManager
	newFn func() T
}

// NewBaseRepo creates a new base repository. Columns are derived from the
// record type's "db" tags.
func NewBaseRepo[T entity.Record[T]](txm *TxManager, table string, newFn func() T) *BaseRepo[T] {
	return &BaseRepo[T]{
		table: table,
		cols:  ExtractDBColumns[T](),
		txm:   txm,
		newFn: newFn,
	}
}

// Builder returns a squirrel builder with SQLite placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Create inserts a new record and returns a copy carrying the assigned id.
func (r *BaseRepo[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	data := StructToMap(rec)
	delete(data, "id") // identity is assigned by the store

	sqlStr, args, err := r.Builder().Insert(r.table).SetMap(data).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.txm.GetQuerier(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return zero, r.classify(err, "insert")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return zero, apperror.NewDatabase(fmt.Errorf("last insert id: %w", err))
	}

	saved := rec.Clone()
	saved.SetID(id)
	saved.ClearErrors()
	return saved, nil
}

// Update modifies an existing record by id. Zero rows affected means the
// record is gone: not found.
func (r *BaseRepo[T]) Update(ctx context.Context, rec T) error {
	data := StructToMap(rec)
	delete(data, "id") // never update the identity

	sqlStr, args, err := r.Builder().
		Update(r.table).
		SetMap(data).
		Where(squirrel.Eq{"id": rec.ID()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := r.txm.GetQuerier(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return r.classify(err, "update")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("rows affected: %w", err))
	}
	if affected == 0 {
		return apperror.NewNotFound(r.table, rec.ID())
	}
	return nil
}

// Delete removes a record by id. Zero rows affected means not found.
func (r *BaseRepo[T]) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := r.Builder().
		Delete(r.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.txm.GetQuerier(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return r.classify(err, "delete")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("rows affected: %w", err))
	}
	if affected == 0 {
		return apperror.NewNotFound(r.table, id)
	}
	return nil
}

// FindByID retrieves a record by id.
func (r *BaseRepo[T]) FindByID(ctx context.Context, id int64) (T, error) {
	rec := r.newFn()

	sqlStr, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return rec, fmt.Errorf("build query: %w", err)
	}

	if err := sqlscan.Get(ctx, r.txm.GetQuerier(ctx), rec, sqlStr, args...); err != nil {
		if sqlscan.NotFound(err) {
			return rec, apperror.NewNotFound(r.table, id)
		}
		return rec, r.classify(err, "get by id")
	}
	return rec, nil
}

// FindAll retrieves all records ordered by name.
func (r *BaseRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	sqlStr, args, err := r.baseSelect().OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := sqlscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sqlStr, args...); err != nil {
		return nil, r.classify(err, "find all")
	}
	return items, nil
}

// Exists checks if a record with the given id exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	sqlStr, args, err := r.Builder().
		Select("1").
		From(r.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.classify(err, "exists")
	}
	return true, nil
}

func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().Select(r.cols...).From(r.table)
}

// classify maps driver failures onto the storage error taxonomy.
func (r *BaseRepo[T]) classify(err error, op string) error {
	if strings.Contains(err.Error(), "constraint failed") {
		return apperror.NewConstraint(err.Error()).WithDetail("table", r.table)
	}
	return apperror.NewDatabase(fmt.Errorf("%s %s: %w", op, r.table, err))
}
