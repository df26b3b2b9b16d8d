package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"painterlog/internal/cache"
	"painterlog/internal/errors"
	"painterlog/internal/model"
	"painterlog/internal/repository"
	"painterlog/internal/timecalc"
)

// LocationRef identifies one stop in the day's itinerary: either an
// existing location by ID or a new one by name typed ad-hoc.
type LocationRef struct {
	ID      uint
	Name    string
	Address string
}

// SaveEntryInput is a full daily entry submission. Date defaults to today
// when empty. Locations are in visit order.
type SaveEntryInput struct {
	Date       string
	StartTime  string
	EndTime    string
	BreakStart *string
	BreakEnd   *string
	Locations  []LocationRef
}

// EntrySummary is the computed result for a saved entry.
type EntrySummary struct {
	WorkedMinutes    int             `json:"worked_minutes"`
	DeductionMinutes int             `json:"break_deduction_minutes"`
	NetMinutes       int             `json:"net_minutes"`
	NetHours         decimal.Decimal `json:"net_hours"`
}

// EntryService handles daily timesheet entries.
type EntryService interface {
	Save(ctx context.Context, userID uint, input SaveEntryInput) (*model.DailyEntry, *EntrySummary, error)
	GetByDate(ctx context.Context, userID uint, date string) (*model.DailyEntry, *EntrySummary, error)
}

type entryService struct {
	entryRepo    repository.EntryRepository
	locationRepo repository.LocationRepository
	cache        *cache.Client
	validator    *EntryValidator
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo repository.EntryRepository, locationRepo repository.LocationRepository, cache *cache.Client) EntryService {
	return &entryService{
		entryRepo:    entryRepo,
		locationRepo: locationRepo,
		cache:        cache,
		validator:    NewEntryValidator(),
	}
}

// Save validates and upserts the entry for (user, date), replacing its
// ordered visit rows to match the submitted list. Any rule violation aborts
// before the write transaction starts.
func (s *entryService) Save(ctx context.Context, userID uint, input SaveEntryInput) (*model.DailyEntry, *EntrySummary, error) {
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, nil, err
	}

	shift, err := s.validator.ValidateTimes(input.StartTime, input.EndTime, input.BreakStart, input.BreakEnd)
	if err != nil {
		return nil, nil, err
	}

	if len(input.Locations) == 0 {
		return nil, nil, errors.NewValidationError("locations", "at least one location must be selected")
	}

	// Ad-hoc names become locations before the entry transaction, mirroring
	// the form where adding a location is its own committed step.
	locationIDs, err := s.resolveLocations(ctx, userID, input.Locations)
	if err != nil {
		return nil, nil, err
	}

	entry := &model.DailyEntry{
		UserID:     userID,
		EntryDate:  date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		BreakStart: input.BreakStart,
		BreakEnd:   input.BreakEnd,
	}

	err = s.entryRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.EntryRepository) error {
		if err := repo.Save(ctx, entry); err != nil {
			return err
		}
		visits := make([]model.DailyLocation, 0, len(locationIDs))
		for i, locationID := range locationIDs {
			visits = append(visits, model.DailyLocation{
				EntryID:       entry.ID,
				LocationID:    locationID,
				SequenceOrder: i + 1,
			})
		}
		return repo.ReplaceVisits(ctx, entry.ID, visits)
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, nil, errors.ErrEntryConflict
		}
		return nil, nil, fmt.Errorf("save entry: %w", err)
	}

	saved, err := s.entryRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("reload entry: %w", err)
	}

	summary := summarize(shift)
	return saved, summary, nil
}

// GetByDate returns the entry for the date with its computed summary.
func (s *entryService) GetByDate(ctx context.Context, userID uint, date string) (*model.DailyEntry, *EntrySummary, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.entryRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrEntryNotFound
		}
		return nil, nil, fmt.Errorf("find entry: %w", err)
	}

	shift, err := s.validator.ValidateTimes(entry.StartTime, entry.EndTime, entry.BreakStart, entry.BreakEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("stored entry invalid: %w", err)
	}

	return entry, summarize(shift), nil
}

// resolveLocations turns the submitted refs into location IDs, creating
// ad-hoc names idempotently on (user, name), and rejects duplicates and
// inactive or foreign locations.
func (s *entryService) resolveLocations(ctx context.Context, userID uint, refs []LocationRef) ([]uint, error) {
	ids := make([]uint, 0, len(refs))
	seen := make(map[uint]bool, len(refs))

	for _, ref := range refs {
		id := ref.ID
		if id == 0 {
			resolved, err := s.resolveByName(ctx, userID, ref)
			if err != nil {
				return nil, err
			}
			id = resolved
		}
		if seen[id] {
			return nil, errors.NewValidationError("locations", "each location may appear only once per entry")
		}
		seen[id] = true
		ids = append(ids, id)
	}

	count, err := s.locationRepo.CountActiveByIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("verify locations: %w", err)
	}
	if count != int64(len(ids)) {
		return nil, errors.ErrLocationInactive
	}

	return ids, nil
}

func (s *entryService) resolveByName(ctx context.Context, userID uint, ref LocationRef) (uint, error) {
	name := sanitizeInput(ref.Name, maxNameLength)
	if name == "" {
		return 0, errors.NewValidationError("locations", "location name cannot be empty")
	}

	existing, err := s.locationRepo.FindActiveByName(ctx, userID, name)
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("check location existence: %w", err)
	}

	count, err := s.locationRepo.CountActive(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	if count >= maxLocationsPerUser {
		return 0, errors.ErrLocationLimit
	}

	location := &model.Location{
		UserID:  userID,
		Name:    name,
		Address: sanitizeInput(ref.Address, maxAddressLength),
		Active:  true,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		if err == gorm.ErrDuplicatedKey {
			// Lost a race on (user, name); the winner's row is the one we want.
			if existing, ferr := s.locationRepo.FindActiveByName(ctx, userID, name); ferr == nil {
				return existing.ID, nil
			}
		}
		return 0, fmt.Errorf("create location: %w", err)
	}

	_ = s.cache.Delete(ctx, locationsCacheKey(userID))

	return location.ID, nil
}

func summarize(shift *ShiftTimes) *EntrySummary {
	worked := timecalc.WorkedMinutes(shift.Start, shift.End)
	net, deduction := timecalc.NetMinutes(shift.Start, shift.End, shift.BreakStart, shift.BreakEnd)
	return &EntrySummary{
		WorkedMinutes:    worked,
		DeductionMinutes: deduction,
		NetMinutes:       net,
		NetHours:         timecalc.Hours(net),
	}
}

func normalizeDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(model.DateLayout), nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return "", errors.ErrInvalidDate
	}
	return date, nil
}
