package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"painterlog/internal/errors"
	"painterlog/internal/model"
	"painterlog/internal/service"
)

// EntryHandler handles daily entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// LocationRefRequest is one stop in the submitted itinerary: an existing
// location by id, or a new one by name.
type LocationRefRequest struct {
	ID      uint   `json:"id,omitempty"`
	Name    string `json:"name,omitempty" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=100"`
}

// SaveEntryRequest represents a daily entry submission.
type SaveEntryRequest struct {
	Date       string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime  string               `json:"start_time" validate:"required"`
	EndTime    string               `json:"end_time" validate:"required"`
	BreakStart *string              `json:"break_start,omitempty"`
	BreakEnd   *string              `json:"break_end,omitempty"`
	Locations  []LocationRefRequest `json:"locations" validate:"required,min=1,dive"`
}

// EntryResponse bundles a saved entry with its computed summary.
type EntryResponse struct {
	Entry   *model.DailyEntry     `json:"entry"`
	Summary *service.EntrySummary `json:"summary"`
}

// Save godoc
// @Summary Save the day's timesheet entry
// @Description Upserts the entry for (user, date) and replaces its ordered
// @Description location visits. Validation failures abort the save with a
// @Description field-level message and nothing written.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveEntryRequest true "Entry data"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries [put]
func (h *EntryHandler) Save(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req SaveEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.SaveEntryInput{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
		Locations:  make([]service.LocationRef, 0, len(req.Locations)),
	}
	for _, ref := range req.Locations {
		input.Locations = append(input.Locations, service.LocationRef{
			ID:      ref.ID,
			Name:    ref.Name,
			Address: ref.Address,
		})
	}

	entry, summary, err := h.entryService.Save(c.Request().Context(), userID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, EntryResponse{Entry: entry, Summary: summary})
}

// Get godoc
// @Summary Get the entry for a date
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param date path string true "Entry date (YYYY-MM-DD)"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries/{date} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	entry, summary, err := h.entryService.GetByDate(c.Request().Context(), userID, c.Param("date"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, EntryResponse{Entry: entry, Summary: summary})
}

// GetSummary godoc
// @Summary Get the computed summary for a date
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param date path string true "Entry date (YYYY-MM-DD)"
// @Success 200 {object} service.EntrySummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries/{date}/summary [get]
func (h *EntryHandler) GetSummary(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	_, summary, err := h.entryService.GetByDate(c.Request().Context(), userID, c.Param("date"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, summary)
}
