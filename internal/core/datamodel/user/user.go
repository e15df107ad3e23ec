package user

import "time"

type User struct {
	ID                int64      `gorm:"primaryKey"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	FirstName         string     `gorm:"column:first_name;not null"`
	LastName          string     `gorm:"column:last_name;not null"`
	PasswordHash      string     `gorm:"column:password_hash;not null"`
	Role              string     `gorm:"column:role;not null;index"`
	InstitutionID     *int64     `gorm:"column:institution_id;index"`
	Status            string     `gorm:"column:status;not null;default:'active'"`
	IsPasswordChanged bool       `gorm:"column:is_password_changed;not null;default:false"`
	LastLoginAt       *time.Time `gorm:"column:last_login_at"`
	CreatedBy         *int64     `gorm:"column:created_by"`
	CreatedAt         time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Institution exists here only because user rows reference it; institution
// management itself is handled elsewhere.
type Institution struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Institution) TableName() string {
	return "institutions"
}
