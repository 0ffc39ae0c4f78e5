package models

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_answer_question" json:"interview_id"`
	QuestionIndex int            `gorm:"not null;uniqueIndex:idx_answer_question" json:"question_index"`
	Question      string         `gorm:"type:text" json:"question"`
	Transcript    string         `gorm:"type:text" json:"transcript"`
	AudioKey      string         `gorm:"type:text" json:"audio_key,omitempty"`
	AIFeedback    AnswerFeedback `gorm:"type:jsonb" json:"ai_feedback"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Answer) TableName() string {
	return "answers"
}
