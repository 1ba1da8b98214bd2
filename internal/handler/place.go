package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ymatsuda/cleaning-schedule/internal/metrics"
	"github.com/ymatsuda/cleaning-schedule/internal/model"
	"github.com/ymatsuda/cleaning-schedule/internal/service"
)

// PlaceManager is the slice of the place service the handlers use.
type PlaceManager interface {
	ListPlaces(ctx context.Context, ownerID, listID uint64) (*model.List, error)
	Create(ctx context.Context, ownerID, listID uint64, name string, intervalDays int) (*model.Place, error)
	Update(ctx context.Context, ownerID, placeID uint64, patch service.PlacePatch) (*model.Place, error)
	Complete(ctx context.Context, ownerID, placeID uint64) (*model.Place, error)
	Delete(ctx context.Context, ownerID, placeID uint64) error
}

// PlaceHandler serves the place endpoints nested under /v1/lists.
type PlaceHandler struct {
	Svc PlaceManager
	Log zerolog.Logger
}

func NewPlaceHandler(svc PlaceManager, log zerolog.Logger) *PlaceHandler {
	return &PlaceHandler{Svc: svc, Log: log}
}

// GetPlaces handles GET /v1/lists/:id/places and returns the list
// with its places.
func (h *PlaceHandler) GetPlaces(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	l, err := h.Svc.ListPlaces(c.Request().Context(), ownerID, listID)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, l)
}

type createPlaceReq struct {
	Name string `json:"name"`
	// IntervalDays is optional; nil falls back to the default of 7.
	IntervalDays *int `json:"interval_days"`
}

// CreatePlace handles POST /v1/lists/:id/places.
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createPlaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	interval := service.DefaultIntervalDays
	if req.IntervalDays != nil {
		interval = *req.IntervalDays
	}
	p, err := h.Svc.Create(c.Request().Context(), ownerID, listID, req.Name, interval)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, p)
}

type updatePlaceReq struct {
	Name         *string     `json:"name"`
	IntervalDays *int        `json:"interval_days"`
	NextDueDate  *model.Date `json:"next_due_date"`
}

// UpdatePlace handles PUT /v1/lists/places/:id. All fields are
// optional; a supplied next_due_date is stored as-is.
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	placeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updatePlaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := h.Svc.Update(c.Request().Context(), ownerID, placeID, service.PlacePatch{
		Name:         req.Name,
		IntervalDays: req.IntervalDays,
		NextDueDate:  req.NextDueDate,
	})
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CompletePlace handles POST /v1/lists/places/:id/complete, advancing
// the due date by the place's interval server-side.
func (h *PlaceHandler) CompletePlace(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	placeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Svc.Complete(c.Request().Context(), ownerID, placeID)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	metrics.PlacesCompletedTotal.Inc()
	return c.JSON(http.StatusOK, p)
}

// DeletePlace handles DELETE /v1/lists/places/:id.
func (h *PlaceHandler) DeletePlace(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	placeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), ownerID, placeID); err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "place deleted"})
}
