// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
	"staffdesk/internal/core/tx"
	"staffdesk/pkg/logger"
)

// EntityService is the persistence gateway for one record kind.
// It gates every write behind whole-record validation, runs lifecycle
// hooks, and executes repository calls in a transaction. Validation
// failures never reach the repository.
type EntityService[T entity.Record[T]] struct {
	repo      Repository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// EntityServiceConfig configures the entity service.
type EntityServiceConfig[T entity.Record[T]] struct {
	Repo       Repository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewEntityService creates a new entity service.
func NewEntityService[T entity.Record[T]](cfg EntityServiceConfig[T]) *EntityService[T] {
	return &EntityService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *EntityService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *EntityService[T]) normalizeGetErr(err error, id any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, id)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewDatabase(err).WithDetail("entity", s.entityName).WithDetail("id", id)
}

// Create validates rec and inserts it, returning the saved record with its
// assigned identity.
func (s *EntityService[T]) Create(ctx context.Context, rec T) (T, error) {
	var saved T

	if err := rec.Validate(); err != nil {
		return saved, err
	}

	if err := s.hooks.Run(ctx, BeforeCreate, rec); err != nil {
		return saved, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Create(ctx, rec)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return saved, err
	}

	if err := s.hooks.Run(ctx, AfterCreate, saved); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return saved, nil
}

// Update validates rec and modifies the stored record with the same id.
func (s *EntityService[T]) Update(ctx context.Context, rec T) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, rec); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, rec); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, rec.ID())
		}
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, rec); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete removes the record with the given id.
func (s *EntityService[T]) Delete(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, id)
		}
		return err
	}
	return nil
}

// FindByID retrieves a record by id.
func (s *EntityService[T]) FindByID(ctx context.Context, id int64) (T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return rec, s.normalizeGetErr(err, id)
	}
	return rec, nil
}

// FindAll retrieves all records ordered by name.
func (s *EntityService[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

// Exists checks if a record exists.
func (s *EntityService[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
