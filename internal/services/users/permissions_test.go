package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
)

var noFieldChange = &models.UpdateEmployeeRequest{Name: "Renamed"}

func projectsChange() *models.UpdateEmployeeRequest {
	return &models.UpdateEmployeeRequest{Projects: []models.MemberRefRequest{{ProjectID: "p-1"}}}
}

func TestCanUpdateEmployeeOrgMismatchFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	actor := f.seedUser(t, models.RoleAdmin, "org-1", nil)
	target := f.seedUser(t, models.RoleStandardUser, "org-2", nil)

	_, err := f.svc.CanUpdateEmployee(context.Background(), f.principalFor(actor), target, noFieldChange)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrorKindBadRequest, appErr.Kind)
	assert.Equal(t, "Fields mismatch", appErr.Message)
}

func TestCanUpdateEmployeeAdminAlwaysAllowed(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	actor := f.seedUser(t, models.RoleAdmin, "org-1", nil)
	target := f.seedUser(t, models.RoleStandardUser, "org-1", nil)

	allowed, err := f.svc.CanUpdateEmployee(context.Background(), f.principalFor(actor), target, projectsChange())
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanUpdateEmployeeDepLead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	inDept := func(dept string) func(*models.User) {
		return func(u *models.User) {
			u.DepartmentID = dept
			u.Departments = []models.MemberRef{{DepartmentID: dept}}
		}
	}

	lead := f.seedUser(t, models.RoleDepLead, "org-1", inDept("dep-1"))
	subordinate := f.seedUser(t, models.RoleStandardUser, "org-1", inDept("dep-1"))
	peer := f.seedUser(t, models.RoleDepLead, "org-1", inDept("dep-1"))
	outsider := f.seedUser(t, models.RoleStandardUser, "org-1", inDept("dep-2"))

	ctx := context.Background()
	actor := f.principalFor(lead)

	allowed, err := f.svc.CanUpdateEmployee(ctx, actor, subordinate, projectsChange())
	require.NoError(t, err)
	assert.True(t, allowed, "lead outranks subordinate in the same department")

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, outsider, noFieldChange)
	require.NoError(t, err)
	assert.False(t, allowed, "different department is out of scope")

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, peer, noFieldChange)
	require.NoError(t, err)
	assert.False(t, allowed, "equal priority does not outrank")

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, lead, noFieldChange)
	require.NoError(t, err)
	assert.True(t, allowed, "self edit without project changes")

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, lead, projectsChange())
	require.NoError(t, err)
	assert.False(t, allowed, "self edit must not touch project memberships")
}

func TestCanUpdateEmployeeProjectLead(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	onProject := func(project string) func(*models.User) {
		return func(u *models.User) {
			u.Projects = []models.MemberRef{{ProjectID: project}}
		}
	}

	lead := f.seedUser(t, models.RoleProjectLead, "org-1", onProject("p-1"))
	member := f.seedUser(t, models.RoleStandardUser, "org-1", onProject("p-1"))
	stranger := f.seedUser(t, models.RoleStandardUser, "org-1", onProject("p-2"))

	ctx := context.Background()
	actor := f.principalFor(lead)

	allowed, err := f.svc.CanUpdateEmployee(ctx, actor, member, projectsChange())
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, stranger, noFieldChange)
	require.NoError(t, err)
	assert.False(t, allowed, "no shared project")
}

func TestCanUpdateEmployeeStandardUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	user := f.seedUser(t, models.RoleStandardUser, "org-1", nil)
	other := f.seedUser(t, models.RoleStandardUser, "org-1", nil)

	ctx := context.Background()
	actor := f.principalFor(user)

	allowed, err := f.svc.CanUpdateEmployee(ctx, actor, user, noFieldChange)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, user, projectsChange())
	require.NoError(t, err)
	assert.False(t, allowed, "standard users cannot change their own memberships")

	allowed, err = f.svc.CanUpdateEmployee(ctx, actor, other, noFieldChange)
	require.NoError(t, err)
	assert.False(t, allowed)
}
