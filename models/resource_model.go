package models

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Capacity    int       `gorm:"not null;default:1" json:"capacity"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"size:255" json:"image_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
