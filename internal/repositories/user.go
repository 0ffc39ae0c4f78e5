package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/interview-coach/internal/models"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts the user or refreshes the profile fields of the row with the
// same external id. user is populated with the stored row.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image_url", "updated_at"}),
		}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := r.db.WithContext(ctx).Where("external_id = ?", user.ExternalID).First(user).Error; err != nil {
		return fmt.Errorf("failed to reload user: %w", err)
	}

	return nil
}
