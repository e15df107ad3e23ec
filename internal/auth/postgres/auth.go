package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/school-management/internal/auth"
	userDatamodel "github.com/frahmantamala/school-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository implements the auth credential store adapter using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByEmailAndRole matches the full (email, role, active) triple in
// one query; the caller treats any miss as invalid credentials.
func (r *Repository) FindActiveByEmailAndRole(email string, role auth.Role) (*auth.User, error) {
	var m userDatamodel.User
	err := r.db.
		Where("LOWER(email) = LOWER(?) AND role = ? AND status = ?", email, role.String(), string(auth.StatusActive)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) FindByID(id int64) (*auth.User, error) {
	var m userDatamodel.User
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

// UpdatePassword writes the hash and the password-changed flag together so
// the two can never diverge.
func (r *Repository) UpdatePassword(id int64, passwordHash string, isPasswordChanged bool) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"is_password_changed": isPasswordChanged,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *Repository) TouchLastLogin(id int64) error {
	now := time.Now()
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"updated_at":    now,
		}).Error
}

func toDomain(m *userDatamodel.User) *auth.User {
	role, _ := auth.ParseRole(m.Role)
	return &auth.User{
		ID:                m.ID,
		Email:             m.Email,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PasswordHash:      m.PasswordHash,
		Role:              role,
		InstitutionID:     m.InstitutionID,
		Status:            auth.Status(m.Status),
		IsPasswordChanged: m.IsPasswordChanged,
		LastLoginAt:       m.LastLoginAt,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
