package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     string         `gorm:"type:text;index;not null" json:"user_id"`
	FileName   string         `gorm:"type:text" json:"file_name"`
	StorageKey string         `gorm:"type:text" json:"storage_key"`
	ParsedJSON ResumeDocument `gorm:"type:jsonb;not null" json:"parsed_json"`
	CreatedAt  time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
