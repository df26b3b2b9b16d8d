package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"painterlog/internal/cache"
	apperrors "painterlog/internal/errors"
	"painterlog/internal/model"
)

// MockLocationRepository is a mock implementation of LocationRepository.
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *model.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *model.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationRepository) FindActiveByName(ctx context.Context, userID uint, name string) (*model.Location, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationRepository) ListActive(ctx context.Context, userID uint) ([]model.Location, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationRepository) CountActive(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) CountActiveByIDs(ctx context.Context, userID uint, ids []uint) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

// nilCache exercises the fail-safe path of the cache wrapper.
var nilCache *cache.Client

func TestLocationService_Add(t *testing.T) {
	tests := []struct {
		name          string
		locName       string
		address       string
		setupMock     func(*MockLocationRepository)
		expectedError error
		wantName      string
	}{
		{
			name:    "creates location with sanitized name",
			locName: "  Main St. Site #2!!  ",
			address: "123 Main St",
			setupMock: func(m *MockLocationRepository) {
				m.On("FindActiveByName", mock.Anything, uint(1), "Main St. Site #2").Return(nil, gorm.ErrRecordNotFound)
				m.On("CountActive", mock.Anything, uint(1)).Return(int64(3), nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Location")).Return(nil)
			},
			wantName: "Main St. Site #2",
		},
		{
			name:          "rejects empty name",
			locName:       "   ",
			setupMock:     func(m *MockLocationRepository) {},
			expectedError: apperrors.NewValidationError("name", "location name cannot be empty"),
		},
		{
			name:          "rejects name with no valid characters",
			locName:       "!!@@%%",
			setupMock:     func(m *MockLocationRepository) {},
			expectedError: apperrors.NewValidationError("name", "location name contains no valid characters"),
		},
		{
			name:    "rejects duplicate name",
			locName: "Main Office",
			setupMock: func(m *MockLocationRepository) {
				m.On("FindActiveByName", mock.Anything, uint(1), "Main Office").
					Return(&model.Location{ID: 4, Name: "Main Office"}, nil)
			},
			expectedError: apperrors.ErrLocationExists,
		},
		{
			name:    "rejects once the cap is reached",
			locName: "One Too Many",
			setupMock: func(m *MockLocationRepository) {
				m.On("FindActiveByName", mock.Anything, uint(1), "One Too Many").Return(nil, gorm.ErrRecordNotFound)
				m.On("CountActive", mock.Anything, uint(1)).Return(int64(100), nil)
			},
			expectedError: apperrors.ErrLocationLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockLocationRepository)
			tt.setupMock(mockRepo)

			service := NewLocationService(mockRepo, nilCache)
			location, err := service.Add(context.Background(), 1, tt.locName, tt.address)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, location)
				mockRepo.AssertNotCalled(t, "Create")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, location)
				assert.Equal(t, tt.wantName, location.Name)
				assert.True(t, location.Active)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLocationService_Deactivate(t *testing.T) {
	t.Run("disables an owned location", func(t *testing.T) {
		mockRepo := new(MockLocationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Location{ID: 7, UserID: 1, Name: "Old Site", Active: true}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *model.Location) bool {
			return l.ID == 7 && !l.Active
		})).Return(nil)

		service := NewLocationService(mockRepo, nilCache)
		err := service.Deactivate(context.Background(), 1, 7)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("hides another user's location", func(t *testing.T) {
		mockRepo := new(MockLocationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Location{ID: 7, UserID: 2, Name: "Not Yours", Active: true}, nil)

		service := NewLocationService(mockRepo, nilCache)
		err := service.Deactivate(context.Background(), 1, 7)

		assert.Equal(t, apperrors.ErrLocationNotFound, err)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown location", func(t *testing.T) {
		mockRepo := new(MockLocationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewLocationService(mockRepo, nilCache)
		err := service.Deactivate(context.Background(), 1, 99)

		assert.Equal(t, apperrors.ErrLocationNotFound, err)
	})

	t.Run("already disabled is a no-op", func(t *testing.T) {
		mockRepo := new(MockLocationRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Location{ID: 7, UserID: 1, Name: "Old Site", Active: false}, nil)

		service := NewLocationService(mockRepo, nilCache)
		err := service.Deactivate(context.Background(), 1, 7)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestLocationService_List(t *testing.T) {
	mockRepo := new(MockLocationRepository)
	mockRepo.On("ListActive", mock.Anything, uint(1)).Return([]model.Location{
		{ID: 2, UserID: 1, Name: "Downtown Site", Active: true},
		{ID: 1, UserID: 1, Name: "Main Office", Active: true},
	}, nil)

	service := NewLocationService(mockRepo, nilCache)
	locations, err := service.List(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, locations, 2)
	mockRepo.AssertExpectations(t)
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{
			name:      "strips disallowed characters",
			input:     "  Main St. Site #2!!  ",
			maxLength: 50,
			want:      "Main St. Site #2",
		},
		{
			name:      "truncates long input",
			input:     strings.Repeat("a", 60),
			maxLength: 50,
			want:      strings.Repeat("a", 50),
		},
		{
			name:      "truncates on a rune boundary",
			input:     strings.Repeat("ü", 60),
			maxLength: 50,
			want:      strings.Repeat("ü", 50),
		},
		{
			name:      "only disallowed characters",
			input:     "@!?*",
			maxLength: 50,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeInput(tt.input, tt.maxLength)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
