package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is stored inline on the post record.
type Comment struct {
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"not null;type:varchar(255)" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Location  string    `gorm:"type:varchar(255)" json:"location,omitzero"`
	Kudos     []string  `gorm:"serializer:json" json:"kudos"`
	Comments  []Comment `gorm:"serializer:json" json:"comments"`
	MediaURL  []string  `gorm:"serializer:json" json:"mediaUrl,omitzero"`
	Media     []byte    `gorm:"type:bytes" json:"-"`
	MediaType string    `gorm:"type:varchar(100)" json:"-"`
	CreatorID string    `gorm:"not null;index;type:varchar(36)" json:"creatorId"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=255"`
	Content  string   `json:"content" validate:"required"`
	Location string   `json:"location,omitempty"`
	MediaURL []string `json:"mediaUrl,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
