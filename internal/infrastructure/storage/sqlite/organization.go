package sqlite

import (
	"staffdesk/internal/domain"
	"staffdesk/internal/domain/organization"
)

// Compile-time check.
var _ domain.Repository[*organization.Organization] = (*OrganizationRepo)(nil)

// OrganizationRepo persists organizations.
type OrganizationRepo struct {
	*BaseRepo[*organization.Organization]
}

// NewOrganizationRepo creates the organization repository.
func NewOrganizationRepo(txm *TxManager) *OrganizationRepo {
	return &OrganizationRepo{
		BaseRepo: NewBaseRepo(txm, "organizations", organization.New),
	}
}
