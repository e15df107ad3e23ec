package user

import (
	"fmt"
	"log/slog"

	internal "github.com/frahmantamala/school-management/internal"
	"github.com/frahmantamala/school-management/internal/auth"
)

// Service handles hierarchy-gated account management.
type Service struct {
	repo            Repository
	authz           *auth.Authorizer
	policy          *auth.PasswordPolicy
	defaultPassword string
	bcryptCost      int
	logger          *slog.Logger
}

func NewService(repo Repository, authz *auth.Authorizer, policy *auth.PasswordPolicy, defaultPassword string, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		authz:           authz,
		policy:          policy,
		defaultPassword: defaultPassword,
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

// Create makes a new account under the role hierarchy. The creation check
// runs before any write. The account starts on the shared bootstrap password
// with isPasswordChanged=false, which forces the change-password flow on
// first login.
func (s *Service) Create(actor *auth.User, dto CreateUserDTO) (*auth.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	targetRole, ok := auth.ParseRole(dto.Role)
	if !ok {
		return nil, internal.NewValidationError("role is invalid", internal.ErrCodeInvalidRole)
	}

	if !s.authz.CanCreate(actor.Role, targetRole) {
		s.logger.Warn("user creation denied by role hierarchy",
			"actor_id", actor.ID, "actor_role", actor.Role, "target_role", targetRole)
		return nil, internal.ErrForbiddenRoleHierarchy
	}

	institutionID, err := s.resolveInstitution(actor, dto.InstitutionID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, internal.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(s.defaultPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	newUser := &auth.User{
		Email:             dto.Email,
		FirstName:         dto.FirstName,
		LastName:          dto.LastName,
		PasswordHash:      hash,
		Role:              targetRole,
		InstitutionID:     institutionID,
		Status:            auth.StatusActive,
		IsPasswordChanged: false,
		CreatedBy:         &actor.ID,
	}

	if err := s.repo.Create(newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", newUser.ID, "role", newUser.Role, "created_by", actor.ID)

	return newUser, nil
}

// resolveInstitution pins the new account to an institution. Admins can only
// create into their own; superadmins must name one, since they carry none
// themselves.
func (s *Service) resolveInstitution(actor *auth.User, requested *int64) (*int64, error) {
	if actor.Role == auth.RoleAdmin {
		if actor.InstitutionID == nil {
			return nil, internal.NewInternalError("admin account has no institution", nil)
		}
		return actor.InstitutionID, nil
	}

	if requested == nil {
		return nil, internal.NewValidationFieldError("institution_id", "institution_id is required", internal.ErrCodeValidationFailed)
	}
	return requested, nil
}

func (s *Service) GetByID(id int64) (*auth.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListByInstitution lists accounts the actor may see: superadmins are not
// institution-bound and must filter explicitly elsewhere, admins see their
// own institution only.
func (s *Service) ListByInstitution(actor *auth.User, limit, offset int) ([]*auth.User, error) {
	if actor.Role != auth.RoleAdmin || actor.InstitutionID == nil {
		return nil, internal.ErrForbiddenOwnership
	}
	return s.repo.ListByInstitution(*actor.InstitutionID, limit, offset)
}
