package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/roles"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type guardFixture struct {
	app    *fiber.App
	tokens *auth.TokenService
	roles  *roles.Service
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}))

	roleSvc := roles.NewService(db)
	require.NoError(t, roleSvc.Seed(context.Background()))

	tokens := auth.NewTokenService(models.JWTConfig{
		SecretKey:         "guard-test-secret",
		AccessTokenExpiry: 3600,
	})
	guard := NewRolesGuard(tokens, roleSvc)

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app := fiber.New()
	app.Get("/open", guard.RequireRoles(), ok)
	app.Get("/admin", guard.RequireRoles(models.RequireRole(models.RoleAdmin)), ok)
	app.Get("/lead", guard.RequireRoles(models.RequireRole(models.RoleDepLead)), ok)
	app.Get("/any", guard.RequireRoles(models.RequireRole(models.RoleStandardUser)), ok)

	return &guardFixture{app: app, tokens: tokens, roles: roleSvc}
}

func (f *guardFixture) tokenFor(t *testing.T, roleName models.RoleName) string {
	t.Helper()

	role, err := f.roles.FindByName(context.Background(), roleName)
	require.NoError(t, err)

	token, err := f.tokens.IssueAccessToken(&models.User{
		ID:             "user-" + string(roleName),
		Email:          string(roleName) + "@example.com",
		RoleIDs:        []string{role.ID},
		OrganizationID: "org-1",
	})
	require.NoError(t, err)
	return token
}

func (f *guardFixture) request(t *testing.T, path, bearer string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGuardAllowsWhenNoRolesDeclared(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	token := f.tokenFor(t, models.RoleStandardUser)
	resp := f.request(t, "/open", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardRejectsMissingToken(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	resp := f.request(t, "/any", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body models.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, models.UnauthorizedMessage, body.Errors[0].Message)
}

func TestGuardRejectsMalformedToken(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	resp := f.request(t, "/any", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuardRejectsUnresolvableRole(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	token, err := f.tokens.IssueAccessToken(&models.User{
		ID:      "ghost",
		RoleIDs: []string{"no-such-role"},
	})
	require.NoError(t, err)

	resp := f.request(t, "/any", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuardAllowsExactRoleName(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	token := f.tokenFor(t, models.RoleStandardUser)
	resp := f.request(t, "/any", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A more authoritative role passes checks for roles it does not literally
// hold. Admin must therefore pass every declared requirement.
func TestGuardPriorityCascade(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	adminToken := f.tokenFor(t, models.RoleAdmin)
	for _, path := range []string{"/admin", "/lead", "/any"} {
		resp := f.request(t, path, adminToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "admin should pass %s", path)
	}

	leadToken := f.tokenFor(t, models.RoleDepLead)
	resp := f.request(t, "/any", leadToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "dep_lead outranks standard_user")
}

func TestGuardForbidsInsufficientPriority(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(t)

	token := f.tokenFor(t, models.RoleStandardUser)
	resp := f.request(t, "/admin", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body models.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, models.ForbiddenMessage, body.Errors[0].Message)
}
