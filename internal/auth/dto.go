package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AdminResetPasswordDTO struct {
	UserID      int64  `json:"user_id"`
	NewPassword string `json:"new_password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and the role against the closed role set.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	if d.Role == "" {
		return ValidationError{Msg: "role is required"}
	}
	if _, ok := ParseRole(d.Role); !ok {
		return ValidationError{Msg: "role is invalid"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return ValidationError{Msg: "current_password is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new_password is required"}
	}
	return nil
}

func (d AdminResetPasswordDTO) Validate() error {
	if d.UserID == 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if d.NewPassword == "" {
		return ValidationError{Msg: "new_password is required"}
	}
	return nil
}

// UserSummary is the non-sensitive projection returned with login responses
// and from the current-user endpoint.
type UserSummary struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              string `json:"role"`
	InstitutionID     *int64 `json:"institution_id,omitempty"`
	IsPasswordChanged bool   `json:"is_password_changed"`
}

func SummaryOf(u *User) UserSummary {
	return UserSummary{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              u.Role.String(),
		InstitutionID:     u.InstitutionID,
		IsPasswordChanged: u.IsPasswordChanged,
	}
}

type LoginResult struct {
	Token                  string      `json:"token"`
	User                   UserSummary `json:"user"`
	RequiresPasswordChange bool        `json:"requires_password_change"`
}

type PasswordChangeResult struct {
	Token                  string `json:"token"`
	RequiresPasswordChange bool   `json:"requires_password_change"`
}
