package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"not null;index" json:"user_id"`
	ResourceID uuid.UUID `gorm:"not null;index" json:"resource_id"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	Purpose    string    `gorm:"type:text;not null" json:"purpose"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	User     User     `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Resource Resource `gorm:"foreignkey:ResourceID" json:"resource,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
