package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleName is the closed set of role kinds.
type RoleName string

const (
	RoleAdmin        RoleName = "admin"
	RoleDepLead      RoleName = "dep_lead"
	RoleProjectLead  RoleName = "project_lead"
	RoleStandardUser RoleName = "standard_user"
)

// RoleDefinition declares a required role on an operation. A caller passes the
// check by holding the named role, or any role whose priority is numerically
// less than or equal to Priority (lower priority = more authority).
type RoleDefinition struct {
	Name     RoleName `json:"name"`
	Priority int      `json:"priority"`
}

// DefaultRoleDefinitions is the process-wide role priority table. It is seeded
// into the role store at startup and passed by injection; it is never mutated.
var DefaultRoleDefinitions = []RoleDefinition{
	{Name: RoleAdmin, Priority: 1},
	{Name: RoleDepLead, Priority: 2},
	{Name: RoleProjectLead, Priority: 3},
	{Name: RoleStandardUser, Priority: 4},
}

// RequireRole returns the definition for name out of the default table.
// Panics on an unknown name: required-role declarations are static route
// metadata, so a miss is a programming error caught at startup.
func RequireRole(name RoleName) RoleDefinition {
	for _, def := range DefaultRoleDefinitions {
		if def.Name == name {
			return def
		}
	}
	panic("unknown role name: " + string(name))
}

// Role is a stored role record, looked up by id or name.
type Role struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        RoleName  `gorm:"uniqueIndex;not null;type:varchar(50)" json:"name"`
	Priority    int       `gorm:"not null" json:"priority"`
	Description string    `gorm:"type:text" json:"description,omitzero"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// MoreAuthoritative reports whether r outranks other (strictly lower priority
// number). Equal priority is not more authoritative.
func (r *Role) MoreAuthoritative(other *Role) bool {
	return r.Priority < other.Priority
}
