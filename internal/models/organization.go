package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CompanyName string    `gorm:"not null;type:varchar(255)" json:"company_name"`
	EmployeesNo int       `gorm:"not null" json:"employees_no"`
	PhoneNumber string    `gorm:"not null;type:varchar(50)" json:"phone_number"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type RegisterOrganizationRequest struct {
	CompanyName string `json:"companyName" validate:"required,min=1,max=255"`
	EmployeesNo int    `json:"employeesNo" validate:"required,min=1"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPairResponse struct {
	JwtToken     string `json:"jwtToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}
