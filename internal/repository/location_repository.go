package repository

import (
	"context"

	"gorm.io/gorm"

	"painterlog/internal/model"
)

// LocationRepository defines location persistence operations.
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	Update(ctx context.Context, location *model.Location) error
	FindByID(ctx context.Context, id uint) (*model.Location, error)
	// FindActiveByName matches case-insensitively among the user's active
	// locations.
	FindActiveByName(ctx context.Context, userID uint, name string) (*model.Location, error)
	ListActive(ctx context.Context, userID uint) ([]model.Location, error)
	CountActive(ctx context.Context, userID uint) (int64, error)
	// CountActiveByIDs counts how many of the given IDs are active locations
	// owned by the user, for validating an itinerary before save.
	CountActiveByIDs(ctx context.Context, userID uint, ids []uint) (int64, error)
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *locationRepository) Update(ctx context.Context, location *model.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *locationRepository) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	var location model.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindActiveByName(ctx context.Context, userID uint, name string) (*model.Location, error) {
	var location model.Location
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND active = ?", userID, name, true).
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) ListActive(ctx context.Context, userID uint) ([]model.Location, error) {
	var locations []model.Location
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("name").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) CountActive(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Location{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *locationRepository) CountActiveByIDs(ctx context.Context, userID uint, ids []uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Location{}).
		Where("user_id = ? AND active = ? AND id IN ?", userID, true, ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
