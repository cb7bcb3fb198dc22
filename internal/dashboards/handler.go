package dashboards

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/session"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the dashboards service.
type Handler struct {
	Svc      *Service
	Sessions *session.Store
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, sessions *session.Store) *Handler {
	return &Handler{Svc: svc, Sessions: sessions}
}

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dashboards", middleware.RequireUser(), h.save)
	rg.GET("/dashboards", h.list)
	rg.GET("/dashboards/:id", h.get)
}

type saveRequest struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	// Fall back to the session's in-flight result and title so a client can
	// save the analysis it just ran without resending the blob.
	state := h.Sessions.Get(userID)
	if len(req.Data) == 0 {
		req.Data = state.Result
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = state.DashboardTitle
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = state.CurrentDashboardID
	}
	if len(req.Data) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no analysis result to save", nil)
		return
	}

	id, err := h.Svc.Save(c.Request.Context(), req.ID, userID, req.Title, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save dashboard", nil)
		}
		return
	}

	h.Sessions.SetCurrentDashboardID(userID, id)
	c.Set("dashboardId", id)

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":      id,
		"message": "Dashboard saved successfully",
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("dashboardId", id)

	// "new" addresses the unsaved result still held in the session.
	if id == "new" {
		state := h.Sessions.Get(userID)
		if len(state.Result) == 0 {
			respond.Error(c, http.StatusNotFound, "not_found", ErrNotFound.Error(), nil)
			return
		}
		respond.OK(c, gin.H{
			"id":    state.CurrentDashboardID,
			"title": state.DashboardTitle,
			"data":  state.Result,
		})
		return
	}

	dashboard, err := h.Svc.Get(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", ErrNotFound.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch dashboard", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"id":        dashboard.ID,
		"title":     dashboard.Title,
		"data":      dashboard.Data,
		"createdAt": dashboard.CreatedAt,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	dashboards, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list dashboards", nil)
		return
	}

	items := make([]gin.H, 0, len(dashboards))
	for _, d := range dashboards {
		items = append(items, gin.H{
			"id":        d.ID,
			"title":     d.Title,
			"createdAt": d.CreatedAt,
		})
	}
	respond.OK(c, gin.H{"dashboards": items})
}
