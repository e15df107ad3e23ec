package user

import (
	errors "github.com/frahmantamala/school-management/internal"
	"github.com/frahmantamala/school-management/internal/auth"
	"github.com/frahmantamala/school-management/internal/core/common/validation"
)

// CreateUserDTO is the transport shape for hierarchy-gated account creation.
// No password field: every new account starts on the shared bootstrap
// password with a forced change at first login.
type CreateUserDTO struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	InstitutionID *int64 `json:"institution_id,omitempty"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()

	validator.Field("email", d.Email).
		Required().
		Email().
		MaxLength(254)

	validator.Field("first_name", d.FirstName).
		Required().
		MaxLength(100)

	validator.Field("last_name", d.LastName).
		Required().
		MaxLength(100)

	validator.Field("role", d.Role).
		Required().
		OneOf(
			auth.RoleSuperadmin.String(),
			auth.RoleAdmin.String(),
			auth.RoleTeacher.String(),
			auth.RoleParent.String(),
			auth.RoleStudent.String(),
		)

	return validator.Validate()
}
