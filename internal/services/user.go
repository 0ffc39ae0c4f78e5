package services

import (
	"context"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

// Identity is what the upstream identity provider knows about the caller.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
	ImageURL   string
}

type UserService interface {
	SyncUser(ctx context.Context, identity Identity) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// SyncUser makes sure the caller has a local user row with a current profile.
func (s *userService) SyncUser(ctx context.Context, identity Identity) (*models.User, error) {
	externalID := strings.TrimSpace(identity.ExternalID)
	if externalID == "" {
		return nil, Unauthorized("Unauthorized")
	}

	user := &models.User{
		ExternalID: externalID,
		Email:      strings.TrimSpace(identity.Email),
		Name:       strings.TrimSpace(identity.Name),
		ImageURL:   strings.TrimSpace(identity.ImageURL),
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, Internal("failed to sync user", err)
	}

	return user, nil
}
