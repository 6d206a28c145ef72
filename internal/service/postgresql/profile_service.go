package service

import (
	"context"
	"errors"

	entity "leafloop/internal/domain"
	repo "leafloop/internal/repository/postgresql"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
}

func NewProfileService(profileRepo repo.ProfileRepository, userRepo repo.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Upsert creates the profile on first save and overwrites it afterwards.
// Last writer wins.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, input entity.UpsertProfileInput) (*entity.Profile, error) {
	profile := &entity.Profile{
		ID:            userID,
		Username:      input.Username,
		FullName:      optional(input.FullName),
		Bio:           optional(input.Bio),
		Location:      optional(input.Location),
		AvatarURL:     optional(input.AvatarURL),
		ContactEmail:  optional(input.ContactEmail),
		ContactPhone:  optional(input.ContactPhone),
		ContactSocial: optional(input.ContactSocial),
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// GetPublic serves another user's display profile, falling back to the
// auth record when they never saved one.
func (s *ProfileService) GetPublic(ctx context.Context, userID uuid.UUID) (*entity.PublicProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		p := profile.Public()
		return &p, nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return &entity.PublicProfile{ID: user.ID, Username: user.Username}, nil
}
