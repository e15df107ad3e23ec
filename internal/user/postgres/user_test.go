package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/school-management/internal/auth"
	"github.com/frahmantamala/school-management/internal/user"
	userPostgres "github.com/frahmantamala/school-management/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

// SQLiteUser is a SQLite-compatible model for testing
type SQLiteUser struct {
	ID                int64      `gorm:"primaryKey"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	FirstName         string     `gorm:"column:first_name;not null"`
	LastName          string     `gorm:"column:last_name;not null"`
	PasswordHash      string     `gorm:"column:password_hash;not null"`
	Role              string     `gorm:"column:role;not null"`
	InstitutionID     *int64     `gorm:"column:institution_id"`
	Status            string     `gorm:"column:status;default:active"`
	IsPasswordChanged bool       `gorm:"column:is_password_changed;default:false"`
	LastLoginAt       *time.Time `gorm:"column:last_login_at"`
	CreatedBy         *int64     `gorm:"column:created_by"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	instA := int64(1)
	instB := int64(2)

	newUser := func(email string, role auth.Role, institutionID *int64) *auth.User {
		return &auth.User{
			Email:             email,
			FirstName:         "Test",
			LastName:          "User",
			PasswordHash:      "$2a$04$testhash",
			Role:              role,
			InstitutionID:     institutionID,
			Status:            auth.StatusActive,
			IsPasswordChanged: false,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create", func() {
		It("should create a user and backfill id and timestamps", func() {
			u := newUser("teacher@school.id", auth.RoleTeacher, &instA)

			err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.CreatedAt).NotTo(BeZero())
		})

		It("should enforce the unique email constraint", func() {
			Expect(repo.Create(newUser("dup@school.id", auth.RoleTeacher, &instA))).To(Succeed())

			err := repo.Create(newUser("dup@school.id", auth.RoleParent, &instA))
			Expect(err).To(HaveOccurred())
		})

		It("should allow a nil institution for superadmins", func() {
			u := newUser("super@school.id", auth.RoleSuperadmin, nil)

			err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.InstitutionID).To(BeNil())
		})
	})

	Describe("GetByID", func() {
		It("should round-trip the domain fields", func() {
			createdBy := int64(9)
			u := newUser("teacher@school.id", auth.RoleTeacher, &instA)
			u.CreatedBy = &createdBy
			Expect(repo.Create(u)).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Email).To(Equal("teacher@school.id"))
			Expect(loaded.Role).To(Equal(auth.RoleTeacher))
			Expect(*loaded.InstitutionID).To(Equal(instA))
			Expect(*loaded.CreatedBy).To(Equal(createdBy))
			Expect(loaded.IsPasswordChanged).To(BeFalse())
		})

		It("should report a missing id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(auth.ErrUserNotFound))
		})
	})

	Describe("EmailExists", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUser("Taken@School.id", auth.RoleTeacher, &instA))).To(Succeed())
		})

		It("should detect an existing email case-insensitively", func() {
			exists, err := repo.EmailExists("taken@school.id")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should miss an unknown email", func() {
			exists, err := repo.EmailExists("free@school.id")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("ListByInstitution", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUser("a1@school.id", auth.RoleTeacher, &instA))).To(Succeed())
			Expect(repo.Create(newUser("a2@school.id", auth.RoleStudent, &instA))).To(Succeed())
			Expect(repo.Create(newUser("b1@school.id", auth.RoleTeacher, &instB))).To(Succeed())
		})

		It("should only return users from the requested institution", func() {
			users, err := repo.ListByInstitution(instA, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			for _, u := range users {
				Expect(*u.InstitutionID).To(Equal(instA))
			}
		})

		It("should respect limit and offset", func() {
			users, err := repo.ListByInstitution(instA, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))

			rest, err := repo.ListByInstitution(instA, 1, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rest).To(HaveLen(1))
			Expect(rest[0].Email).NotTo(Equal(users[0].Email))
		})

		It("should return empty for an institution with no users", func() {
			users, err := repo.ListByInstitution(99, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})
})
