package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lagscope-backend/internal/session"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/telemetry"
)

// Handler serves the upload-to-analysis gateway.
type Handler struct {
	Svc            *Service
	Sessions       *session.Store
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, sessions *session.Store, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handler{Svc: svc, Sessions: sessions, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the analyze route. The route keeps its legacy path
// and literal error bodies for existing clients.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if !IsCSV(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only CSV files are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if userID != "" {
		h.Sessions.StartAnalyzing(userID)
	}

	raw, err := h.Svc.Analyze(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		if userID != "" {
			h.Sessions.FinishAnalyzing(userID)
		}
		telemetry.Error("analysis.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    userID,
			"file":       fileHeader.Filename,
			"error":      err.Error(),
		})
		switch {
		case errors.Is(err, ErrNotCSV), errors.Is(err, ErrEmptyLog):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error processing file"})
		default:
			// Timeout, schema mismatch, and upstream failures all collapse
			// to the legacy opaque body.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing file"})
		}
		return
	}

	dashboardID := uuid.NewString()
	c.Set("dashboardId", dashboardID)
	if userID != "" {
		h.Sessions.SetResult(userID, dashboardID, raw)
	}

	c.Header("X-Dashboard-Id", dashboardID)
	c.Data(http.StatusOK, "application/json", raw)
}
