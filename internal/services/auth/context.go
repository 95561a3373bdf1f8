package auth

import (
	"github.com/gofiber/fiber/v2"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller attached to a request after the guard
// verifies its bearer token.
type Principal struct {
	UserID         string
	Email          string
	RoleIDs        []string
	OrganizationID string
	DepartmentID   string
}

// PrimaryRoleID returns the role that drives authorization decisions.
func (p *Principal) PrimaryRoleID() string {
	if len(p.RoleIDs) == 0 {
		return ""
	}
	return p.RoleIDs[0]
}

// SetPrincipal stores the principal in the request-local storage.
func SetPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}

// GetPrincipal returns the request principal, or nil on unauthenticated
// routes.
func GetPrincipal(c *fiber.Ctx) *Principal {
	p, ok := c.Locals(principalKey).(*Principal)
	if !ok {
		return nil
	}
	return p
}

// GetUserID returns the authenticated caller's user id.
func GetUserID(c *fiber.Ctx) (string, bool) {
	p := GetPrincipal(c)
	if p == nil {
		return "", false
	}
	return p.UserID, p.UserID != ""
}

// GetOrganizationID returns the caller's organization scope.
func GetOrganizationID(c *fiber.Ctx) (string, bool) {
	p := GetPrincipal(c)
	if p == nil {
		return "", false
	}
	return p.OrganizationID, p.OrganizationID != ""
}
