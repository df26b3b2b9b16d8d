package repository

import (
	"context"

	"gorm.io/gorm"

	"painterlog/internal/model"
)

// EntryRepository defines daily entry persistence operations.
type EntryRepository interface {
	// FindByUserAndDate loads the entry with its visits in sequence order.
	FindByUserAndDate(ctx context.Context, userID uint, date string) (*model.DailyEntry, error)
	// Save upserts the entry for (user, date), updating time fields in place
	// when a row already exists. The entry's ID is filled in either way.
	Save(ctx context.Context, entry *model.DailyEntry) error
	// ReplaceVisits swaps the entry's visit rows for the given ordered set.
	ReplaceVisits(ctx context.Context, entryID uint, visits []model.DailyLocation) error
	// WithTransaction executes fn against a repository bound to a single
	// write transaction; any error rolls the whole save back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntryRepository) error) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) FindByUserAndDate(ctx context.Context, userID uint, date string) (*model.DailyEntry, error) {
	var entry model.DailyEntry
	if err := r.db.WithContext(ctx).
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order")
		}).
		Preload("Visits.Location").
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) Save(ctx context.Context, entry *model.DailyEntry) error {
	var existing model.DailyEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", entry.UserID, entry.EntryDate).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(entry).Error
	}
	if err != nil {
		return err
	}

	existing.StartTime = entry.StartTime
	existing.EndTime = entry.EndTime
	existing.BreakStart = entry.BreakStart
	existing.BreakEnd = entry.BreakEnd
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	return nil
}

func (r *entryRepository) ReplaceVisits(ctx context.Context, entryID uint, visits []model.DailyLocation) error {
	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Delete(&model.DailyLocation{}).Error; err != nil {
		return err
	}
	if len(visits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&visits).Error
}

// WithTransaction executes a function within a database transaction.
func (r *entryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &entryRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
