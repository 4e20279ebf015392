package user

import (
	"context"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/tx"
	"staffdesk/internal/domain"
)

// ReferenceSource answers existence checks against the backing store,
// not the in-memory list. Job and Organization repositories implement it.
type ReferenceSource interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service provides persistence operations for the User record kind.
// Before every create and update it re-validates that the referenced job
// and organization still exist in their backing stores; a stale in-memory
// selection fails with a distinct not-found error per reference.
type Service struct {
	*domain.EntityService[*User]
}

// NewService creates a new User service with referential checks wired as
// before-create and before-update hooks.
func NewService(
	repo domain.Repository[*User],
	jobs ReferenceSource,
	organizations ReferenceSource,
	txManager tx.Manager,
) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "user",
	})

	checkReferences := func(ctx context.Context, u *User) error {
		ok, err := jobs.Exists(ctx, u.JobID)
		if err != nil {
			return apperror.NewDatabase(err).WithDetail("reference", "job")
		}
		if !ok {
			return apperror.NewNotFound("job", u.JobID)
		}

		ok, err = organizations.Exists(ctx, u.OrganizationID)
		if err != nil {
			return apperror.NewDatabase(err).WithDetail("reference", "organization")
		}
		if !ok {
			return apperror.NewNotFound("organization", u.OrganizationID)
		}
		return nil
	}

	base.Hooks().On(domain.BeforeCreate, checkReferences)
	base.Hooks().On(domain.BeforeUpdate, checkReferences)

	return &Service{EntityService: base}
}
