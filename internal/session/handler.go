package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/server/respond"
)

// Handler exposes the caller's session state.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches session routes to the router group. All of them
// operate on caller-owned state, so an identity is mandatory.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", middleware.RequireUser(), h.get)
	rg.PUT("/session/title", middleware.RequireUser(), h.setTitle)
	rg.DELETE("/session", middleware.RequireUser(), h.clear)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.OK(c, h.Store.Get(userID))
}

type setTitleRequest struct {
	Title string `json:"title"`
}

func (h *Handler) setTitle(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req setTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title is required", nil)
		return
	}

	h.Store.SetTitle(userID, req.Title)
	respond.OK(c, h.Store.Get(userID))
}

func (h *Handler) clear(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	h.Store.Clear(userID)
	c.Status(http.StatusNoContent)
}
