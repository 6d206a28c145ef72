package service

import (
	"context"
	"testing"

	entity "leafloop/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService() (*ProfileService, *fakeProfileRepo, *fakeUserRepo) {
	profiles := newFakeProfileRepo()
	users := newFakeUserRepo()
	return NewProfileService(profiles, users), profiles, users
}

func TestProfileUpsertCreatesAndOverwrites(t *testing.T) {
	svc, _, _ := newProfileService()
	userID := uuid.New()

	first, err := svc.Upsert(context.Background(), userID, entity.UpsertProfileInput{
		Username: "alice",
		Bio:      "reader",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	require.NotNil(t, first.Bio)

	second, err := svc.Upsert(context.Background(), userID, entity.UpsertProfileInput{
		Username:     "alice",
		ContactEmail: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, second.Bio, "last writer wins, cleared fields stay cleared")
	require.NotNil(t, second.ContactEmail)
	assert.Equal(t, "alice@example.com", *second.ContactEmail)
}

func TestProfileGetMissing(t *testing.T) {
	svc, _, _ := newProfileService()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetPublicFallsBackToUser(t *testing.T) {
	svc, _, users := newProfileService()
	userID := uuid.New()
	users.users[userID] = &entity.User{ID: userID, Username: "bob", IsActive: true}

	got, err := svc.GetPublic(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Nil(t, got.FullName)
}

func TestGetPublicOmitsContact(t *testing.T) {
	svc, profiles, _ := newProfileService()
	userID := uuid.New()
	profiles.profiles[userID] = &entity.Profile{
		ID:           userID,
		Username:     "carol",
		FullName:     strptr("Carol C"),
		ContactEmail: strptr("carol@example.com"),
	}

	got, err := svc.GetPublic(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
	require.NotNil(t, got.FullName)
}

func TestGetPublicUnknownUser(t *testing.T) {
	svc, _, _ := newProfileService()

	_, err := svc.GetPublic(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
