package models

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
	RoleHost  = "host"
)

type User struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Username        string  `gorm:"size:150;not null" json:"username"`
	Email           string  `gorm:"size:255;not null;unique" json:"email"`
	Password        string  `gorm:"not null" json:"-"`
	PhoneNumber     string  `gorm:"size:20" json:"phone_number"`
	ProfileImageURL *string `gorm:"size:255" json:"profile_image_url"`
	Role            string  `gorm:"size:20;not null;default:'guest'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
