package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null;type:varchar(255)" json:"name"`
	Description    string    `gorm:"not null;type:text" json:"description"`
	DepLeadID      string    `gorm:"type:varchar(36);index" json:"dep_lead_id,omitzero"`
	OrganizationID string    `gorm:"not null;index;type:varchar(36)" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required"`
	DepLeadID   string `json:"depLeadId,omitempty" validate:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description string `json:"description,omitempty"`
	DepLeadID   string `json:"depLeadId,omitempty" validate:"omitempty,uuid"`
}
