package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of account roles. Parsing is the only way to obtain
// one from untrusted input, so an invalid role never reaches a query or token.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleParent     Role = "parent"
	RoleStudent    Role = "student"
)

var allRoles = []Role{RoleSuperadmin, RoleAdmin, RoleTeacher, RoleParent, RoleStudent}

func ParseRole(s string) (Role, bool) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string { return string(r) }

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// User is the identity record this service authenticates and authorizes.
// PasswordHash never leaves the process: it is excluded from JSON and from
// token claims.
type User struct {
	ID                int64      `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	InstitutionID     *int64     `json:"institution_id,omitempty"`
	Status            Status     `json:"status"`
	IsPasswordChanged bool       `json:"is_password_changed"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedBy         *int64     `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (u *User) IsActiveUser() bool {
	return u.Status == StatusActive
}

// SameInstitution reports whether both users belong to the same institution.
// A nil institution on either side never matches.
func (u *User) SameInstitution(other *User) bool {
	if u.InstitutionID == nil || other.InstitutionID == nil {
		return false
	}
	return *u.InstitutionID == *other.InstitutionID
}

// Claims is the stateless identity assertion carried in the bearer token.
// There is no version field; any change to this shape needs coordinated
// rollout because old and new tokens are not interchangeable.
type Claims struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	InstitutionID     *int64 `json:"institution_id,omitempty"`
	IsPasswordChanged bool   `json:"is_password_changed"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed identity assertions. Revocation is
// out of scope: a compromised token stays valid until its natural expiry.
type TokenService interface {
	Issue(user *User) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// Repository is the credential store adapter. Email lookups are
// case-insensitive; reads must see the adapter's own preceding writes within
// a request.
type Repository interface {
	FindActiveByEmailAndRole(email string, role Role) (*User, error)
	FindByID(id int64) (*User, error)
	UpdatePassword(id int64, passwordHash string, isPasswordChanged bool) error
	TouchLastLogin(id int64) error
}

// ServiceAPI is what the HTTP layer depends on.
type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResult, error)
	ChangePassword(userID int64, dto ChangePasswordDTO) (*PasswordChangeResult, error)
	AdminResetPassword(actor *User, dto AdminResetPasswordDTO) error
	VerifyAccessToken(tokenString string) (*Claims, error)
	GetActiveUser(id int64) (*User, error)
}

var (
	// ErrInvalidCredentials covers wrong email, wrong password and wrong role
	// alike; callers must not be able to tell which one failed.
	ErrInvalidCredentials       = errors.New("invalid email, password, or role")
	ErrInvalidToken             = errors.New("invalid token")
	ErrTokenExpired             = errors.New("token expired")
	ErrUserInactive             = errors.New("user not found or account is inactive")
	ErrUserNotFound             = errors.New("user not found")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
	ErrDefaultPassword          = errors.New("new password cannot be the default password")
	ErrOwnership                = errors.New("you can only manage users in your institution")
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the authenticated principal placed in the request
// context by the session middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// VerifyPassword compares a bcrypt hash against a candidate password.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
