package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusInactive ProjectStatus = "inactive"
	ProjectStatusDone     ProjectStatus = "done"
)

type Project struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string        `gorm:"not null;type:varchar(255);uniqueIndex:idx_projects_name_department" json:"name"`
	Alias         string        `gorm:"type:varchar(255)" json:"alias,omitzero"`
	Description   string        `gorm:"type:text" json:"description,omitzero"`
	PositionIDs   []string      `gorm:"serializer:json" json:"positions,omitzero"`
	DepartmentID  string        `gorm:"not null;type:varchar(36);index;uniqueIndex:idx_projects_name_department" json:"department_id"`
	ProjectLeadID string        `gorm:"type:varchar(36);index" json:"project_lead,omitzero"`
	Status        ProjectStatus `gorm:"not null;type:varchar(50)" json:"status"`
	Board         string        `gorm:"type:text" json:"board,omitzero"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreateProjectRequest struct {
	Name          string        `json:"name" validate:"required,min=1,max=255"`
	Alias         string        `json:"alias,omitempty"`
	Description   string        `json:"description,omitempty"`
	Positions     []string      `json:"positions,omitempty" validate:"omitempty,dive,uuid"`
	DepartmentID  string        `json:"departmentId" validate:"required,uuid"`
	ProjectLeadID string        `json:"projectLead,omitempty" validate:"omitempty,uuid"`
	Status        ProjectStatus `json:"status" validate:"required,oneof=active inactive done"`
	Board         string        `json:"board,omitempty"`
}
