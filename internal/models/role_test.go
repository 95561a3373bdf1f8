package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The guard's priority cascade means admin must outrank or tie every role,
// otherwise an admin could be locked out of routes it should always pass.
func TestAdminOutranksEveryRole(t *testing.T) {
	t.Parallel()

	admin := RequireRole(RoleAdmin)
	for _, def := range DefaultRoleDefinitions {
		assert.LessOrEqual(t, admin.Priority, def.Priority, "admin must be at least as authoritative as %s", def.Name)
	}
}

func TestRequireRolePanicsOnUnknownName(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		RequireRole(RoleName("superuser"))
	})
}

func TestMoreAuthoritativeIsStrict(t *testing.T) {
	t.Parallel()

	lead := &Role{Name: RoleDepLead, Priority: 2}
	other := &Role{Name: RoleProjectLead, Priority: 2}
	standard := &Role{Name: RoleStandardUser, Priority: 4}

	assert.True(t, lead.MoreAuthoritative(standard))
	assert.False(t, standard.MoreAuthoritative(lead))
	assert.False(t, lead.MoreAuthoritative(other), "equal priority must not count as more authoritative")
}
