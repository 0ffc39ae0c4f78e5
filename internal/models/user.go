package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an account of the upstream identity provider.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExternalID string    `gorm:"type:text;uniqueIndex;not null" json:"external_id"`
	Email      string    `gorm:"type:text" json:"email"`
	Name       string    `gorm:"type:text" json:"name"`
	ImageURL   string    `gorm:"type:text" json:"image_url"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
