package models

import "time"

// StatisticsID is the singleton statistics record key.
const StatisticsID = "aabbccddeeff"

// Statistics aggregates post counts per location into a single record.
type Statistics struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Locations map[string]int `gorm:"serializer:json" json:"locations"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Statistics) TableName() string {
	return "statistics"
}
