package postgres

import (
	"errors"

	"github.com/frahmantamala/school-management/internal/auth"
	userDatamodel "github.com/frahmantamala/school-management/internal/core/datamodel/user"
	"github.com/frahmantamala/school-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *auth.User) error {
	m := toDatamodel(u)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id int64) (*auth.User, error) {
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

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) ListByInstitution(institutionID int64, limit, offset int) ([]*auth.User, error) {
	var models []userDatamodel.User
	err := r.db.Where("institution_id = ?", institutionID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]*auth.User, len(models))
	for i := range models {
		users[i] = toDomain(&models[i])
	}
	return users, nil
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

func toDatamodel(u *auth.User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role.String(),
		InstitutionID:     u.InstitutionID,
		Status:            string(u.Status),
		IsPasswordChanged: u.IsPasswordChanged,
		LastLoginAt:       u.LastLoginAt,
		CreatedBy:         u.CreatedBy,
	}
}
