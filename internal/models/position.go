package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Position struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null;type:varchar(255)" json:"name"`
	OrganizationID string    `gorm:"not null;index;type:varchar(36)" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}

func (p *Position) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreatePositionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type UpdatePositionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
