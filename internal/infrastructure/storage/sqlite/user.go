package sqlite

import (
	"staffdesk/internal/domain"
	"staffdesk/internal/domain/user"
)

// Compile-time check.
var _ domain.Repository[*user.User] = (*UserRepo)(nil)

// UserRepo persists users.
type UserRepo struct {
	*BaseRepo[*user.User]
}

// NewUserRepo creates the user repository.
func NewUserRepo(txm *TxManager) *UserRepo {
	return &UserRepo{
		BaseRepo: NewBaseRepo(txm, "users", user.New),
	}
}
