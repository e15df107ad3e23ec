package auth

import (
	"errors"

	internal "github.com/frahmantamala/school-management/internal"
)

// Service is the authentication service: credential verification, the forced
// password-change state machine, and administrative resets.
type Service struct {
	repo       Repository
	tokens     TokenService
	policy     *PasswordPolicy
	authz      *Authorizer
	bcryptCost int
}

func NewService(repo Repository, tokens TokenService, policy *PasswordPolicy, authz *Authorizer, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		policy:     policy,
		authz:      authz,
		bcryptCost: bcryptCost,
	}
}

// Authorizer exposes the authorization engine so transport wiring can build
// role and ownership gates from the same hierarchy the service uses.
func (s *Service) Authorizer() *Authorizer {
	return s.authz
}

// Login verifies the (email, password, role) triple. The role is part of the
// lookup, and every mismatch collapses into ErrInvalidCredentials so the
// response never reveals which element was wrong. Storage failures are not
// mismatches and propagate unchanged. The only write on success is the
// last-login timestamp.
func (s *Service) Login(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, _ := ParseRole(dto.Role)

	user, err := s.repo.FindActiveByEmailAndRole(dto.Email, role)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	// The flag alone is not trusted: a user could have picked the shared
	// default as their "changed" password, so the plaintext is compared too.
	requiresChange := !user.IsPasswordChanged || s.policy.IsDefaultPassword(dto.Password)

	return &LoginResult{
		Token:                  token,
		User:                   SummaryOf(user),
		RequiresPasswordChange: requiresChange,
	}, nil
}

// ChangePassword is the self-service path and the only operation that sets
// isPasswordChanged to true. A fresh token is issued so the stale flag in any
// previously issued token is superseded.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) (*PasswordChangeResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := VerifyPassword(user.PasswordHash, dto.CurrentPassword); err != nil {
		return nil, ErrCurrentPasswordIncorrect
	}

	if violations := s.policy.Validate(dto.NewPassword); len(violations) > 0 {
		return nil, internal.NewPolicyViolationError(violations)
	}

	if s.policy.IsDefaultPassword(dto.NewPassword) {
		return nil, ErrDefaultPassword
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePassword(user.ID, hash, true); err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	user.IsPasswordChanged = true

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &PasswordChangeResult{
		Token:                  token,
		RequiresPasswordChange: false,
	}, nil
}

// AdminResetPassword replaces the target's password and deliberately resets
// isPasswordChanged to false: an administrator can hand out a password, but
// the owner must confirm it by changing it on next login. The ownership check
// runs before any mutation.
func (s *Service) AdminResetPassword(actor *User, dto AdminResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	target, err := s.repo.FindByID(dto.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !s.authz.CanManage(actor, target) {
		return ErrOwnership
	}

	if violations := s.policy.Validate(dto.NewPassword); len(violations) > 0 {
		return internal.NewPolicyViolationError(violations)
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(target.ID, hash, false)
}

// VerifyAccessToken validates a bearer token and returns its claims.
func (s *Service) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}

// GetActiveUser re-fetches the live record for a verified token's subject.
// Missing or non-active users are rejected here, which is what makes a
// suspension effective on the very next request despite stateless tokens.
func (s *Service) GetActiveUser(id int64) (*User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserInactive
		}
		return nil, err
	}
	if !user.IsActiveUser() {
		return nil, ErrUserInactive
	}
	return user, nil
}

// HashPassword hashes with the service's configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}
