package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"painterlog/internal/errors"
	"painterlog/internal/model"
	"painterlog/internal/service"
)

// LocationHandler handles location endpoints.
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateLocationRequest represents an ad-hoc location submission.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Address string `json:"address,omitempty" validate:"max=100"`
}

// LocationsResponse lists a user's active locations.
type LocationsResponse struct {
	Locations []model.Location `json:"locations"`
}

// List godoc
// @Summary List the caller's active locations
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LocationsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /locations [get]
func (h *LocationHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	locations, err := h.locationService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LocationsResponse{Locations: locations})
}

// Create godoc
// @Summary Add a new location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLocationRequest true "Location data"
// @Success 201 {object} model.Location
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /locations [post]
func (h *LocationHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	location, err := h.locationService.Add(c.Request().Context(), userID, req.Name, req.Address)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, location)
}

// Deactivate godoc
// @Summary Disable a location
// @Description Soft-disables the location so it stops appearing in pickers.
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /locations/{id} [delete]
func (h *LocationHandler) Deactivate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	locationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid location ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.locationService.Deactivate(c.Request().Context(), userID, uint(locationID)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "location disabled",
	})
}
