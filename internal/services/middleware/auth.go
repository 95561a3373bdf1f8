// Package middleware holds the request guards in front of the API handlers.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"github.com/sustainaByte/orghub/internal/services/roles"
)

// RolesGuard verifies bearer tokens and enforces per-route role requirements.
type RolesGuard struct {
	tokens *auth.TokenService
	roles  *roles.Service
}

func NewRolesGuard(tokens *auth.TokenService, roleService *roles.Service) *RolesGuard {
	return &RolesGuard{tokens: tokens, roles: roleService}
}

// Authenticate verifies the bearer token and attaches the principal. Routes
// that need an identity but no particular role use this alone.
func (g *RolesGuard) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := g.resolvePrincipal(c)
		if err != nil {
			return unauthorized(c, err)
		}
		auth.SetPrincipal(c, principal)
		return c.Next()
	}
}

// OptionalAuthenticate attaches the principal when a valid bearer token is
// present and lets the request through either way. Used on routes that accept
// both anonymous and authenticated callers.
func (g *RolesGuard) OptionalAuthenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if principal, err := g.resolvePrincipal(c); err == nil {
			auth.SetPrincipal(c, principal)
		}
		return c.Next()
	}
}

// RequireRoles verifies the bearer token and authorizes the caller against
// the declared role requirements. The caller passes by holding a required
// role by name, or any role at least as authoritative as a required one
// (numerically lower or equal priority). An empty requirement list only
// authenticates.
//
// Any failure to establish identity, including unresolvable role references,
// is reported as unauthorized. Insufficient privilege is forbidden.
func (g *RolesGuard) RequireRoles(required ...models.RoleDefinition) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := g.resolvePrincipal(c)
		if err != nil {
			return unauthorized(c, err)
		}

		if len(required) > 0 {
			held, err := g.roles.FindByIDs(c.Context(), principal.RoleIDs)
			if err != nil || len(held) == 0 {
				return unauthorized(c, err)
			}
			if !satisfies(held, required) {
				appErr := models.NewForbiddenError("")
				return c.Status(appErr.StatusCode()).JSON(appErr.Body())
			}
		}

		auth.SetPrincipal(c, principal)
		return c.Next()
	}
}

func (g *RolesGuard) resolvePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	token := extractBearer(c)
	if token == "" {
		return nil, errors.New("missing bearer token")
	}
	claims, err := g.tokens.Verify(token, auth.TokenUseAccess)
	if err != nil {
		return nil, err
	}
	return claims.Principal(), nil
}

func satisfies(held []models.Role, required []models.RoleDefinition) bool {
	for _, def := range required {
		for _, role := range held {
			if role.Name == def.Name || role.Priority <= def.Priority {
				return true
			}
		}
	}
	return false
}

func extractBearer(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func unauthorized(c *fiber.Ctx, cause error) error {
	if cause != nil {
		log.Debugf("Authentication failed: %v", cause)
	}
	appErr := models.NewUnauthorizedError(cause)
	return c.Status(appErr.StatusCode()).JSON(appErr.Body())
}
