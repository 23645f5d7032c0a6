package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/models"
)

// ProfileService resolves user identities to display names. Profiles share
// their id with the owning user.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetDisplayName returns the display name for a user. A missing profile is
// not an error; the name is simply empty.
func (s *ProfileService) GetDisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return profile.DisplayName, nil
}

// Upsert creates or updates the profile row for a user.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, displayName string) error {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{ID: userID, DisplayName: displayName}
		return s.db.WithContext(ctx).Create(&profile).Error
	}
	if err != nil {
		return err
	}
	profile.DisplayName = displayName
	return s.db.WithContext(ctx).Save(&profile).Error
}
