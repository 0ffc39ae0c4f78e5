package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestSyncUser(t *testing.T) {
	repo := &memoryUserRepo{users: map[string]models.User{}}
	svc := NewUserService(repo)
	ctx := context.Background()

	first, err := svc.SyncUser(ctx, Identity{ExternalID: "ext_1", Email: " a@b.c ", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", first.Email)

	second, err := svc.SyncUser(ctx, Identity{ExternalID: "ext_1", Email: "new@b.c", Name: "Ana", ImageURL: "http://img"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new@b.c", repo.users["ext_1"].Email)
	assert.Len(t, repo.users, 1)
}

func TestSyncUser_Errors(t *testing.T) {
	svc := NewUserService(&memoryUserRepo{users: map[string]models.User{}, err: errBoom})

	_, err := svc.SyncUser(context.Background(), Identity{ExternalID: "  "})
	assert.Equal(t, CodeUnauthorized, CodeOf(err))

	_, err = svc.SyncUser(context.Background(), Identity{ExternalID: "ext_1"})
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.ErrorIs(t, err, errBoom)
}
