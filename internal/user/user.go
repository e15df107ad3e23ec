package user

import (
	"github.com/frahmantamala/school-management/internal/auth"
)

// Repository is the persistence surface the user module needs beyond the
// credential store: account creation and lookups for management flows.
type Repository interface {
	Create(u *auth.User) error
	GetByID(id int64) (*auth.User, error)
	EmailExists(email string) (bool, error)
	ListByInstitution(institutionID int64, limit, offset int) ([]*auth.User, error)
}

// ServiceAPI is what the HTTP layer depends on.
type ServiceAPI interface {
	Create(actor *auth.User, dto CreateUserDTO) (*auth.User, error)
	GetByID(id int64) (*auth.User, error)
	ListByInstitution(actor *auth.User, limit, offset int) ([]*auth.User, error)
}
