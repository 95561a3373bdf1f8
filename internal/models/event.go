package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donor records one donation toward an event's fundraising goal.
type Donor struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

type Event struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title          string    `gorm:"not null;type:varchar(255)" json:"title"`
	Content        string    `gorm:"not null;type:text" json:"content"`
	Kudos          []string  `gorm:"serializer:json" json:"kudos"`
	MediaURL       []string  `gorm:"serializer:json" json:"mediaUrl,omitzero"`
	CreatorID      string    `gorm:"not null;index;type:varchar(36)" json:"creatorId"`
	RequiredMoney  int64     `gorm:"not null;default:0" json:"requiredMoney"`
	CollectedMoney int64     `gorm:"not null;default:0" json:"collectedMoney"`
	Donors         []Donor   `gorm:"serializer:json" json:"donors"`
	Volunteers     []string  `gorm:"serializer:json" json:"volunteers"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type CreateEventRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=255"`
	Content       string   `json:"content" validate:"required"`
	MediaURL      []string `json:"mediaUrl,omitempty"`
	RequiredMoney int64    `json:"requiredMoney,omitempty" validate:"omitempty,min=0"`
}

// UpdateEventRequest records a donation and/or a volunteer signup.
type UpdateEventRequest struct {
	DonationAmount int64 `json:"donationAmount,omitempty" validate:"omitempty,min=1"`
	Volunteer      bool  `json:"volunteer,omitempty"`
}
