package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmploymentType is the contracted hours per working day.
type EmploymentType int

const (
	EmploymentFullTime EmploymentType = 8
	EmploymentPartTime EmploymentType = 4
)

type Address struct {
	City         string `json:"city,omitzero"`
	Country      string `json:"country,omitzero"`
	Street       string `json:"street,omitzero"`
	StreetNumber string `json:"streetNumber,omitzero"`
}

// MemberRef ties a user to a project or department together with the position
// held there. Stored inline on the user record, like the original document
// model, so membership updates stay single-row writes.
type MemberRef struct {
	ProjectID    string `json:"projectId,omitzero"`
	DepartmentID string `json:"departmentId,omitzero"`
	PositionID   string `json:"positionId,omitzero"`
}

// TimesheetEntry is one logged working day. Times are epoch milliseconds,
// matching the original wire format.
type TimesheetEntry struct {
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime"`
	LoggedHours     int64  `json:"loggedHours"`
	AdditionalNotes string `json:"additionalNotes,omitzero"`
}

type User struct {
	ID              string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string           `gorm:"type:varchar(255)" json:"name"`
	Surname         string           `gorm:"type:varchar(255)" json:"surname"`
	Email           string           `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email"`
	Password        string           `gorm:"not null;type:varchar(255)" json:"-"`
	PhoneNumber     string           `gorm:"not null;type:varchar(50)" json:"phone_number"`
	EmergencyNumber string           `gorm:"type:varchar(50)" json:"emergency_number,omitzero"`
	Address         Address          `gorm:"serializer:json" json:"address"`
	RoleIDs         []string         `gorm:"serializer:json;not null" json:"-"`
	OrganizationID  string           `gorm:"not null;index;type:varchar(36)" json:"-"`
	DepartmentID    string           `gorm:"type:varchar(36)" json:"department_id,omitzero"`
	Projects        []MemberRef      `gorm:"serializer:json" json:"projects,omitzero"`
	Departments     []MemberRef      `gorm:"serializer:json" json:"departments,omitzero"`
	EmploymentType  EmploymentType   `gorm:"not null;default:8" json:"employment_type"`
	Timesheets      []TimesheetEntry `gorm:"serializer:json" json:"-"`
	CreatedAt       time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PrimaryRoleID returns roles[0], the role that drives authorization
// decisions. Users hold a list of role references but in practice one.
func (u *User) PrimaryRoleID() string {
	if len(u.RoleIDs) == 0 {
		return ""
	}
	return u.RoleIDs[0]
}

type MemberRefRequest struct {
	ProjectID    string `json:"projectId,omitempty" validate:"omitempty,uuid"`
	DepartmentID string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	PositionID   string `json:"positionId,omitempty" validate:"omitempty,uuid"`
}

type CreateEmployeeRequest struct {
	Name            string             `json:"name" validate:"required,min=1,max=255"`
	Surname         string             `json:"surname" validate:"required,min=1,max=255"`
	Email           string             `json:"email" validate:"required,email"`
	PhoneNumber     string             `json:"phoneNumber" validate:"required"`
	EmergencyNumber string             `json:"emergencyNumber,omitempty"`
	Address         Address            `json:"address,omitempty"`
	Projects        []MemberRefRequest `json:"projects,omitempty" validate:"omitempty,dive"`
	EmploymentType  EmploymentType     `json:"employmentType,omitempty" validate:"omitempty,oneof=4 8"`
}

// UpdateEmployeeRequest carries the fields proposed for change. Projects is a
// pointer slice so "field absent" and "field present but empty" stay
// distinguishable: the permission policy keys off whether projects is touched.
type UpdateEmployeeRequest struct {
	Name            string             `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Surname         string             `json:"surname,omitempty" validate:"omitempty,min=1,max=255"`
	Email           string             `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber     string             `json:"phoneNumber,omitempty"`
	EmergencyNumber string             `json:"emergencyNumber,omitempty"`
	Address         *Address           `json:"address,omitempty"`
	Projects        []MemberRefRequest `json:"projects,omitempty" validate:"omitempty,dive"`
	EmploymentType  EmploymentType     `json:"employmentType,omitempty" validate:"omitempty,oneof=4 8"`
}

// TouchesProjects reports whether the update proposes a change to project
// memberships. The permission policy treats these edits as privileged.
func (r *UpdateEmployeeRequest) TouchesProjects() bool {
	return r.Projects != nil
}

type CreateTimesheetRequest struct {
	StartTime       int64  `json:"startTime" validate:"required"`
	EndTime         int64  `json:"endTime" validate:"required"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`
}

// EmployeeResponse is the employee shape returned to clients: no password,
// no role ids, no organization id.
type EmployeeResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Surname         string           `json:"surname"`
	Email           string           `json:"email"`
	PhoneNumber     string           `json:"phoneNumber"`
	EmergencyNumber string           `json:"emergencyNumber,omitzero"`
	Address         Address          `json:"address"`
	Projects        []MemberRef      `json:"projects,omitzero"`
	Departments     []MemberRef      `json:"departments,omitzero"`
	EmploymentType  EmploymentType   `json:"employmentType"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (u *User) ToEmployeeResponse() *EmployeeResponse {
	return &EmployeeResponse{
		ID:              u.ID,
		Name:            u.Name,
		Surname:         u.Surname,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		EmergencyNumber: u.EmergencyNumber,
		Address:         u.Address,
		Projects:        u.Projects,
		Departments:     u.Departments,
		EmploymentType:  u.EmploymentType,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// EmployeeCriteriaResponse is one row of the employees-by-project or
// employees-by-department listing.
type EmployeeCriteriaResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	ProjectName    string `json:"projectName,omitzero"`
	DepartmentName string `json:"departmentName,omitzero"`
	Position       string `json:"position,omitzero"`
}
