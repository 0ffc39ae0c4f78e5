package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interview, error)
	AddAnswer(ctx context.Context, answer *models.Answer) error
	Finalize(ctx context.Context, id uuid.UUID, data *FinalizeData) error
}

type FinalizeData struct {
	Feedback    models.InterviewFeedback
	Score       float64
	CompletedAt time.Time
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// FindByIDForUser loads the interview with its answers in question order.
func (r *interviewRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Answers", orderAnswers).
		Where("id = ? AND user_id = ?", id, userID).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// ListByUser returns the user's interviews, oldest first, with answers.
func (r *interviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Preload("Answers", orderAnswers).
		Where("user_id = ?", userID).
		Order("started_at ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// AddAnswer stores the answer and moves a created interview to answering.
// A second answer for the same question yields ErrDuplicate.
func (r *interviewRepository) AddAnswer(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Interview{}).
			Where("id = ? AND status <> ?", answer.InterviewID, models.StatusFinalized).
			Updates(map[string]interface{}{
				"status":     models.StatusAnswering,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("interview is finalized: %w", ErrStaleState)
		}

		if err := tx.Create(answer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("question %d already answered: %w", answer.QuestionIndex, ErrDuplicate)
			}
			return fmt.Errorf("failed to create answer: %w", err)
		}
		return nil
	})
}

// Finalize writes the whole-interview critique. It succeeds at most once per interview.
func (r *interviewRepository) Finalize(ctx context.Context, id uuid.UUID, data *FinalizeData) error {
	result := r.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ? AND status <> ?", id, models.StatusFinalized).
		Updates(map[string]interface{}{
			"status":       models.StatusFinalized,
			"feedback":     data.Feedback,
			"score":        data.Score,
			"completed_at": data.CompletedAt,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to finalize interview: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview already finalized: %w", ErrStaleState)
	}

	return nil
}

func orderAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("answers.question_index ASC")
}
