package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"painterlog/internal/cache"
	"painterlog/internal/errors"
	"painterlog/internal/model"
	"painterlog/internal/repository"
)

const (
	maxLocationsPerUser = 100
	maxNameLength       = 50
	maxAddressLength    = 100
	locationCacheTTL    = 5 * time.Minute
)

// LocationService handles a user's work location set.
type LocationService interface {
	List(ctx context.Context, userID uint) ([]model.Location, error)
	Add(ctx context.Context, userID uint, name, address string) (*model.Location, error)
	Deactivate(ctx context.Context, userID, locationID uint) error
}

type locationService struct {
	repo  repository.LocationRepository
	cache *cache.Client
}

// NewLocationService creates a new location service.
func NewLocationService(repo repository.LocationRepository, cache *cache.Client) LocationService {
	return &locationService{
		repo:  repo,
		cache: cache,
	}
}

func locationsCacheKey(userID uint) string {
	return fmt.Sprintf("locations:%d", userID)
}

// List retrieves the user's active locations ordered by name, with caching.
func (s *locationService) List(ctx context.Context, userID uint) ([]model.Location, error) {
	if data, _ := s.cache.Get(ctx, locationsCacheKey(userID)); data != nil {
		var cached []model.Location
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	locations, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(locations); err == nil {
		_ = s.cache.Set(ctx, locationsCacheKey(userID), payload, locationCacheTTL)
	}

	return locations, nil
}

// Add creates an ad-hoc location for the user. The name must survive
// sanitization, must not collide case-insensitively with an active location,
// and the user must be under the location cap.
func (s *locationService) Add(ctx context.Context, userID uint, name, address string) (*model.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("name", "location name cannot be empty")
	}

	name = sanitizeInput(name, maxNameLength)
	if name == "" {
		return nil, errors.NewValidationError("name", "location name contains no valid characters")
	}
	address = sanitizeInput(address, maxAddressLength)

	existing, err := s.repo.FindActiveByName(ctx, userID, name)
	if err == nil && existing != nil {
		return nil, errors.ErrLocationExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check location existence: %w", err)
	}

	count, err := s.repo.CountActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count locations: %w", err)
	}
	if count >= maxLocationsPerUser {
		return nil, errors.ErrLocationLimit
	}

	location := &model.Location{
		UserID:  userID,
		Name:    name,
		Address: address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		// Uniqueness on (user, name) is the last line of defense.
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrLocationExists
		}
		return nil, fmt.Errorf("create location: %w", err)
	}

	_ = s.cache.Delete(ctx, locationsCacheKey(userID))

	return location, nil
}

// Deactivate soft-disables a location. Historical itineraries keep their
// reference; the location simply stops appearing in pickers.
func (s *locationService) Deactivate(ctx context.Context, userID, locationID uint) error {
	location, err := s.repo.FindByID(ctx, locationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrLocationNotFound
		}
		return fmt.Errorf("find location: %w", err)
	}
	if location.UserID != userID {
		return errors.ErrLocationNotFound
	}
	if !location.Active {
		return nil
	}

	location.Active = false
	if err := s.repo.Update(ctx, location); err != nil {
		return fmt.Errorf("deactivate location: %w", err)
	}

	_ = s.cache.Delete(ctx, locationsCacheKey(userID))

	return nil
}

// sanitizeInput strips characters outside the allowed set, truncates to
// maxLength runes, and trims surrounding whitespace.
func sanitizeInput(text string, maxLength int) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(" -_.,()#", r) {
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}
	return strings.TrimSpace(string(runes))
}
