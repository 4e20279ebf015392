package job

import (
	"staffdesk/internal/core/tx"
	"staffdesk/internal/domain"
)

// Service provides persistence operations for the Job record kind.
type Service struct {
	*domain.EntityService[*Job]
}

// NewService creates a new Job service.
func NewService(repo domain.Repository[*Job], txManager tx.Manager) *Service {
	return &Service{
		EntityService: domain.NewEntityService(domain.EntityServiceConfig[*Job]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "job",
		}),
	}
}
