package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/email"
	"github.com/sustainaByte/orghub/internal/services/roles"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubHolidays struct {
	holiday bool
	err     error
}

func (s stubHolidays) IsPublicHoliday(ctx context.Context, day time.Time) (bool, error) {
	return s.holiday, s.err
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	roleSvc *roles.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{}, &models.Role{}, &models.User{},
		&models.Department{}, &models.Project{}, &models.Position{},
	))

	roleSvc := roles.NewService(db)
	require.NoError(t, roleSvc.Seed(context.Background()))

	tokens := auth.NewTokenService(models.JWTConfig{
		SecretKey:         "users-test-secret",
		AccessTokenExpiry: 3600,
	})
	mailer := email.NewMailer(models.SMTPConfig{}, models.FrontendConfig{})

	svc := NewService(db, roleSvc, tokens, mailer, stubHolidays{})
	return &fixture{db: db, svc: svc, roleSvc: roleSvc}
}

// seedUser inserts a user holding the given role and returns the record.
func (f *fixture) seedUser(t *testing.T, roleName models.RoleName, orgID string, mutate func(*models.User)) *models.User {
	t.Helper()

	role, err := f.roleSvc.FindByName(context.Background(), roleName)
	require.NoError(t, err)

	user := &models.User{
		Name:           "Test",
		Surname:        string(roleName),
		Email:          string(roleName) + "-" + uuid.NewString() + "@example.com",
		Password:       "hashed",
		PhoneNumber:    "0700000000",
		RoleIDs:        []string{role.ID},
		OrganizationID: orgID,
		EmploymentType: models.EmploymentFullTime,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, repository.New[models.User](f.db).Create(context.Background(), user))
	return user
}

func (f *fixture) principalFor(u *models.User) *auth.Principal {
	return &auth.Principal{
		UserID:         u.ID,
		Email:          u.Email,
		RoleIDs:        u.RoleIDs,
		OrganizationID: u.OrganizationID,
		DepartmentID:   u.DepartmentID,
	}
}
