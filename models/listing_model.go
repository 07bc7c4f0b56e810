package models

import (
	"time"
)

type Listing struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	HostID        uint    `gorm:"not null;index" json:"host_id"`
	Name          string  `gorm:"size:200;not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Location      string  `gorm:"size:255;not null" json:"location"`
	PricePerNight float64 `gorm:"type:numeric(10,2);not null" json:"price_per_night"`
	IsAvailable   bool    `gorm:"default:true" json:"is_available"`

	Host User `gorm:"foreignKey:HostID" json:"host,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
