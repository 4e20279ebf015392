package organization

import (
	"staffdesk/internal/core/tx"
	"staffdesk/internal/domain"
)

// Service provides persistence operations for the Organization record kind.
type Service struct {
	*domain.EntityService[*Organization]
}

// NewService creates a new Organization service.
func NewService(repo domain.Repository[*Organization], txManager tx.Manager) *Service {
	return &Service{
		EntityService: domain.NewEntityService(domain.EntityServiceConfig[*Organization]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "organization",
		}),
	}
}
