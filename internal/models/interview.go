package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

// An interview only moves forward: created -> answering -> finalized.
const (
	StatusCreated   InterviewStatus = "created"
	StatusAnswering InterviewStatus = "answering"
	StatusFinalized InterviewStatus = "finalized"
)

type Interview struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      string             `gorm:"type:text;index;not null" json:"user_id"`
	ResumeID    uuid.UUID          `gorm:"type:uuid;not null" json:"resume_id"`
	Questions   QuestionList       `gorm:"type:jsonb;not null" json:"questions"`
	Status      InterviewStatus    `gorm:"not null;default:'created'" json:"status"`
	Feedback    *InterviewFeedback `gorm:"type:jsonb" json:"feedback,omitempty"`
	Score       *float64           `gorm:"type:decimal(4,2)" json:"score,omitempty"`
	StartedAt   time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	CreatedAt   time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Resume  Resume   `gorm:"foreignKey:ResumeID" json:"-"`
	Answers []Answer `gorm:"foreignKey:InterviewID" json:"answers,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}

// IsFinalized reports whether the whole-interview critique has been written.
func (i *Interview) IsFinalized() bool {
	return i.Status == StatusFinalized
}
