package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "painterlog/internal/errors"
	"painterlog/internal/model"
	"painterlog/internal/repository"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByUserAndDate(ctx context.Context, userID uint, date string) (*model.DailyEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyEntry), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *model.DailyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceVisits(ctx context.Context, entryID uint, visits []model.DailyLocation) error {
	args := m.Called(ctx, entryID, visits)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself so the transactional path
// can be exercised without a database.
func (m *MockEntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.EntryRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

func TestEntryService_Save_RejectsBeforeWrite(t *testing.T) {
	tests := []struct {
		name      string
		input     SaveEntryInput
		wantField string
		wantError error
	}{
		{
			name: "start not before end",
			input: SaveEntryInput{
				Date: "2024-03-11", StartTime: "09:00", EndTime: "08:00",
				Locations: []LocationRef{{ID: 5}},
			},
			wantField: "start_time",
		},
		{
			name: "break outside the shift",
			input: SaveEntryInput{
				Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00",
				BreakStart: strp("08:00"), BreakEnd: strp("08:30"),
				Locations: []LocationRef{{ID: 5}},
			},
			wantField: "break_start",
		},
		{
			name: "half-open break window",
			input: SaveEntryInput{
				Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00",
				BreakStart: strp("12:00"),
				Locations:  []LocationRef{{ID: 5}},
			},
			wantField: "break_end",
		},
		{
			name: "no locations",
			input: SaveEntryInput{
				Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00",
			},
			wantField: "locations",
		},
		{
			name: "duplicate location in itinerary",
			input: SaveEntryInput{
				Date: "2024-03-11", StartTime: "09:00", EndTime: "17:00",
				Locations: []LocationRef{{ID: 5}, {ID: 5}},
			},
			wantField: "locations",
		},
		{
			name: "bad date",
			input: SaveEntryInput{
				Date: "11.03.2024", StartTime: "09:00", EndTime: "17:00",
				Locations: []LocationRef{{ID: 5}},
			},
			wantError: apperrors.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEntryRepo := new(MockEntryRepository)
			mockLocationRepo := new(MockLocationRepository)

			service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
			entry, summary, err := service.Save(context.Background(), 1, tt.input)

			assert.Error(t, err)
			assert.Nil(t, entry)
			assert.Nil(t, summary)
			if tt.wantError != nil {
				assert.Equal(t, tt.wantError, err)
			} else {
				var ve *apperrors.ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
			}

			// Nothing may be written when validation fails.
			mockEntryRepo.AssertNotCalled(t, "WithTransaction")
			mockEntryRepo.AssertNotCalled(t, "Save")
			mockEntryRepo.AssertNotCalled(t, "ReplaceVisits")
			mockLocationRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestEntryService_Save_UpsertsEntryWithDenseSequence(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	mockLocationRepo := new(MockLocationRepository)

	mockLocationRepo.On("CountActiveByIDs", mock.Anything, uint(1), []uint{5, 9}).Return(int64(2), nil)

	mockEntryRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockEntryRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.DailyEntry")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.DailyEntry).ID = 42
		}).Return(nil)

	var captured []model.DailyLocation
	mockEntryRepo.On("ReplaceVisits", mock.Anything, uint(42), mock.AnythingOfType("[]model.DailyLocation")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]model.DailyLocation)
		}).Return(nil)

	saved := &model.DailyEntry{
		ID: 42, UserID: 1, EntryDate: "2024-03-11",
		StartTime: "09:00", EndTime: "17:00",
		BreakStart: strp("12:00"), BreakEnd: strp("12:45"),
	}
	mockEntryRepo.On("FindByUserAndDate", mock.Anything, uint(1), "2024-03-11").Return(saved, nil)

	service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
	entry, summary, err := service.Save(context.Background(), 1, SaveEntryInput{
		Date:       "2024-03-11",
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: strp("12:00"),
		BreakEnd:   strp("12:45"),
		Locations:  []LocationRef{{ID: 5}, {ID: 9}},
	})

	assert.NoError(t, err)
	assert.Equal(t, saved, entry)

	// 45 minute break deducts exactly 30 minutes from an 8 hour shift.
	assert.Equal(t, 480, summary.WorkedMinutes)
	assert.Equal(t, 30, summary.DeductionMinutes)
	assert.Equal(t, 450, summary.NetMinutes)
	assert.Equal(t, "7.5", summary.NetHours.String())

	// Visits carry dense 1-based sequence numbers in submission order.
	assert.Len(t, captured, 2)
	assert.Equal(t, uint(5), captured[0].LocationID)
	assert.Equal(t, 1, captured[0].SequenceOrder)
	assert.Equal(t, uint(9), captured[1].LocationID)
	assert.Equal(t, 2, captured[1].SequenceOrder)

	mockEntryRepo.AssertExpectations(t)
	mockLocationRepo.AssertExpectations(t)
}

func TestEntryService_Save_ShortBreakHasNoDeduction(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	mockLocationRepo := new(MockLocationRepository)

	mockLocationRepo.On("CountActiveByIDs", mock.Anything, uint(1), []uint{5}).Return(int64(1), nil)
	mockEntryRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockEntryRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.DailyEntry")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.DailyEntry).ID = 42
		}).Return(nil)
	mockEntryRepo.On("ReplaceVisits", mock.Anything, uint(42), mock.Anything).Return(nil)
	mockEntryRepo.On("FindByUserAndDate", mock.Anything, uint(1), "2024-03-11").
		Return(&model.DailyEntry{ID: 42}, nil)

	service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
	_, summary, err := service.Save(context.Background(), 1, SaveEntryInput{
		Date:       "2024-03-11",
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: strp("12:00"),
		BreakEnd:   strp("12:20"),
		Locations:  []LocationRef{{ID: 5}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 480, summary.WorkedMinutes)
	assert.Equal(t, 0, summary.DeductionMinutes)
	assert.Equal(t, 480, summary.NetMinutes)
	assert.Equal(t, "8", summary.NetHours.String())
}

func TestEntryService_Save_CreatesAdHocLocation(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	mockLocationRepo := new(MockLocationRepository)

	mockLocationRepo.On("FindActiveByName", mock.Anything, uint(1), "Riverside House").
		Return(nil, gorm.ErrRecordNotFound)
	mockLocationRepo.On("CountActive", mock.Anything, uint(1)).Return(int64(2), nil)
	mockLocationRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Location")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Location).ID = 7
		}).Return(nil)
	mockLocationRepo.On("CountActiveByIDs", mock.Anything, uint(1), []uint{7}).Return(int64(1), nil)

	mockEntryRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockEntryRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.DailyEntry")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.DailyEntry).ID = 42
		}).Return(nil)
	mockEntryRepo.On("ReplaceVisits", mock.Anything, uint(42), mock.Anything).Return(nil)
	mockEntryRepo.On("FindByUserAndDate", mock.Anything, uint(1), "2024-03-11").
		Return(&model.DailyEntry{ID: 42}, nil)

	service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
	_, _, err := service.Save(context.Background(), 1, SaveEntryInput{
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "17:00",
		Locations: []LocationRef{{Name: "Riverside House", Address: "9 River Rd"}},
	})

	assert.NoError(t, err)
	mockLocationRepo.AssertExpectations(t)
	mockEntryRepo.AssertExpectations(t)
}

func TestEntryService_Save_RejectsInactiveLocation(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	mockLocationRepo := new(MockLocationRepository)

	// Only one of the two referenced locations is active and owned.
	mockLocationRepo.On("CountActiveByIDs", mock.Anything, uint(1), []uint{5, 9}).Return(int64(1), nil)

	service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
	entry, summary, err := service.Save(context.Background(), 1, SaveEntryInput{
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "17:00",
		Locations: []LocationRef{{ID: 5}, {ID: 9}},
	})

	assert.Equal(t, apperrors.ErrLocationInactive, err)
	assert.Nil(t, entry)
	assert.Nil(t, summary)
	mockEntryRepo.AssertNotCalled(t, "WithTransaction")
}

func TestEntryService_Save_ConcurrentSaveConflict(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	mockLocationRepo := new(MockLocationRepository)

	mockLocationRepo.On("CountActiveByIDs", mock.Anything, uint(1), []uint{5}).Return(int64(1), nil)
	mockEntryRepo.On("WithTransaction", mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
	_, _, err := service.Save(context.Background(), 1, SaveEntryInput{
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "17:00",
		Locations: []LocationRef{{ID: 5}},
	})

	assert.Equal(t, apperrors.ErrEntryConflict, err)
}

func TestEntryService_GetByDate(t *testing.T) {
	t.Run("returns entry with summary", func(t *testing.T) {
		mockEntryRepo := new(MockEntryRepository)
		mockLocationRepo := new(MockLocationRepository)

		mockEntryRepo.On("FindByUserAndDate", mock.Anything, uint(1), "2024-03-11").
			Return(&model.DailyEntry{
				ID: 42, UserID: 1, EntryDate: "2024-03-11",
				StartTime: "09:00", EndTime: "17:00",
			}, nil)

		service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
		entry, summary, err := service.GetByDate(context.Background(), 1, "2024-03-11")

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, 480, summary.WorkedMinutes)
		assert.Equal(t, 480, summary.NetMinutes)
	})

	t.Run("missing entry", func(t *testing.T) {
		mockEntryRepo := new(MockEntryRepository)
		mockLocationRepo := new(MockLocationRepository)

		mockEntryRepo.On("FindByUserAndDate", mock.Anything, uint(1), "2024-03-11").
			Return(nil, gorm.ErrRecordNotFound)

		service := NewEntryService(mockEntryRepo, mockLocationRepo, nilCache)
		entry, summary, err := service.GetByDate(context.Background(), 1, "2024-03-11")

		assert.Equal(t, apperrors.ErrEntryNotFound, err)
		assert.Nil(t, entry)
		assert.Nil(t, summary)
	})
}
