package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

const maxUsernameLength = 64

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, username string) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

// CreateProfile returns the existing profile when the username is taken.
func (s *profileService) CreateProfile(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)
	log.Debug("creating profile: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, errors.NewValidationError("username", "too long")
	}

	profile, err := s.profileRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%d", id)

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%d", id)

	ok, err := s.profileRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}
	if !ok {
		return errors.NewNotFoundError("profile", id)
	}

	return nil
}
