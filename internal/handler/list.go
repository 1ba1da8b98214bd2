package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
)

// ListManager is the slice of the list service the handlers use.
type ListManager interface {
	Create(ctx context.Context, ownerID uint64, title string) (*model.List, error)
	List(ctx context.Context, ownerID uint64) ([]*model.List, error)
	Rename(ctx context.Context, ownerID, listID uint64, title string) (*model.List, error)
	Delete(ctx context.Context, ownerID, listID uint64) error
}

// ListHandler serves the /v1/lists endpoints.
type ListHandler struct {
	Svc ListManager
	Log zerolog.Logger
}

func NewListHandler(svc ListManager, log zerolog.Logger) *ListHandler {
	return &ListHandler{Svc: svc, Log: log}
}

type listReq struct {
	Title string `json:"title"`
}

// CreateList handles POST /v1/lists.
func (h *ListHandler) CreateList(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req listReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	l, err := h.Svc.Create(c.Request().Context(), ownerID, req.Title)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// GetLists handles GET /v1/lists and returns the caller's lists with
// their places nested.
func (h *ListHandler) GetLists(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lists, err := h.Svc.List(c.Request().Context(), ownerID)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	if lists == nil {
		lists = []*model.List{}
	}
	return c.JSON(http.StatusOK, lists)
}

// UpdateList handles PUT /v1/lists/:id (title rename).
func (h *ListHandler) UpdateList(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req listReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	l, err := h.Svc.Rename(c.Request().Context(), ownerID, id, req.Title)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteList handles DELETE /v1/lists/:id; the list's places go with it.
func (h *ListHandler) DeleteList(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), ownerID, id); err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "list deleted"})
}
