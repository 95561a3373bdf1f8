package departments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/repository"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/email"
	"github.com/sustainaByte/orghub/internal/services/roles"
	"github.com/sustainaByte/orghub/internal/services/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type neverHoliday struct{}

func (neverHoliday) IsPublicHoliday(ctx context.Context, day time.Time) (bool, error) {
	return false, nil
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	users   *users.Service
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

	tokens := auth.NewTokenService(models.JWTConfig{SecretKey: "departments-test-secret", AccessTokenExpiry: 3600})
	mailer := email.NewMailer(models.SMTPConfig{}, models.FrontendConfig{})
	userSvc := users.NewService(db, roleSvc, tokens, mailer, neverHoliday{})

	return &fixture{db: db, svc: NewService(db, userSvc), users: userSvc, roleSvc: roleSvc}
}

func (f *fixture) seedUser(t *testing.T, roleName models.RoleName, orgID string) *models.User {
	t.Helper()

	role, err := f.roleSvc.FindByName(context.Background(), roleName)
	require.NoError(t, err)

	user := &models.User{
		Name:           "Test",
		Surname:        string(roleName),
		Email:          uuid.NewString() + "@example.com",
		Password:       "hashed",
		PhoneNumber:    "0700000000",
		RoleIDs:        []string{role.ID},
		OrganizationID: orgID,
		EmploymentType: models.EmploymentFullTime,
	}
	require.NoError(t, repository.New[models.User](f.db).Create(context.Background(), user))
	return user
}

func adminPrincipal(orgID string) *auth.Principal {
	return &auth.Principal{UserID: uuid.NewString(), OrganizationID: orgID}
}

func TestCreateRejectsDuplicateNamePerOrganization(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	actor := adminPrincipal("org-1")

	_, err := f.svc.Create(ctx, actor, &models.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, actor, &models.CreateDepartmentRequest{Name: "Engineering"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindConflict, appErr.Kind)

	// Same name in another organization is fine.
	_, err = f.svc.Create(ctx, adminPrincipal("org-2"), &models.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)
}

func TestCreateEscalatesLeadRole(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	lead := f.seedUser(t, models.RoleStandardUser, "org-1")

	_, err := f.svc.Create(ctx, adminPrincipal("org-1"), &models.CreateDepartmentRequest{
		Name:      "Engineering",
		DepLeadID: lead.ID,
	})
	require.NoError(t, err)

	depLeadRole, err := f.roleSvc.FindByName(ctx, models.RoleDepLead)
	require.NoError(t, err)
	reloaded, err := f.users.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{depLeadRole.ID}, reloaded.RoleIDs)
}

func TestCreateNeverDemotesLead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	admin := f.seedUser(t, models.RoleAdmin, "org-1")

	_, err := f.svc.Create(ctx, adminPrincipal("org-1"), &models.CreateDepartmentRequest{
		Name:      "Engineering",
		DepLeadID: admin.ID,
	})
	require.NoError(t, err)

	reloaded, err := f.users.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.RoleIDs, reloaded.RoleIDs, "an admin lead keeps the admin role")
}

func TestCreateRejectsForeignLead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	foreign := f.seedUser(t, models.RoleStandardUser, "org-2")

	_, err := f.svc.Create(context.Background(), adminPrincipal("org-1"), &models.CreateDepartmentRequest{
		Name:      "Engineering",
		DepLeadID: foreign.ID,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindBadRequest, appErr.Kind)
	assert.Equal(t, "Fields mismatch", appErr.Message)
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	actor := adminPrincipal("org-1")

	department, err := f.svc.Create(ctx, actor, &models.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	member := f.seedUser(t, models.RoleStandardUser, "org-1")
	member.Departments = []models.MemberRef{{DepartmentID: department.ID}}
	require.NoError(t, f.db.Save(member).Error)

	_, err = f.svc.Delete(ctx, actor, department.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindConflict, appErr.Kind)

	member.Departments = nil
	require.NoError(t, f.db.Save(member).Error)

	deleted, err := f.svc.Delete(ctx, actor, department.ID)
	require.NoError(t, err)
	assert.Equal(t, department.ID, deleted.ID)

	_, err = f.svc.Get(ctx, actor, department.ID)
	require.Error(t, err)
}
