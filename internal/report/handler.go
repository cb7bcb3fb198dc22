package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lagscope-backend/internal/analysis"
	"lagscope-backend/internal/dashboards"
	"lagscope-backend/internal/session"
	"lagscope-backend/internal/shared/server/middleware"
	"lagscope-backend/internal/shared/server/respond"
)

// Handler serves the dashboard-view operations: filtered issue and
// recommendation lists, windowed metrics, and CSV export.
type Handler struct {
	Dashboards *dashboards.Service
	Sessions   *session.Store
}

// NewHandler constructs a Handler.
func NewHandler(svc *dashboards.Service, sessions *session.Store) *Handler {
	return &Handler{Dashboards: svc, Sessions: sessions}
}

// RegisterRoutes attaches report routes under a dashboard id.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboards/:id/issues", h.issues)
	rg.GET("/dashboards/:id/recommendations", h.recommendations)
	rg.GET("/dashboards/:id/metrics", h.metrics)
	rg.GET("/dashboards/:id/metrics/export", h.export)
}

func (h *Handler) issues(c *gin.Context) {
	result, ok := h.resolve(c)
	if !ok {
		return
	}

	severity, ok := parseSeverity(c, c.Query("severity"))
	if !ok {
		return
	}
	issues := FilterIssues(result.Issues, severity)
	if c.DefaultQuery("sort", "severity") == "severity" {
		issues = SortIssues(issues)
	}

	respond.OK(c, gin.H{
		"issues": issues,
		"total":  len(result.Issues),
	})
}

func (h *Handler) recommendations(c *gin.Context) {
	result, ok := h.resolve(c)
	if !ok {
		return
	}

	priority, ok := parseSeverity(c, c.Query("priority"))
	if !ok {
		return
	}
	recs := FilterRecommendations(result.Recommendations, priority)
	if c.DefaultQuery("sort", "priority") == "priority" {
		recs = SortRecommendations(recs)
	}

	respond.OK(c, gin.H{
		"recommendations": recs,
		"total":           len(result.Recommendations),
	})
}

func (h *Handler) metrics(c *gin.Context) {
	result, ok := h.resolve(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	respond.OK(c, gin.H{
		"metrics": TrailingWindow(result.Metrics, window),
	})
}

func (h *Handler) export(c *gin.Context) {
	result, ok := h.resolve(c)
	if !ok {
		return
	}
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	csvText, err := ExportCSV(TrailingWindow(result.Metrics, window))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export metrics", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="performance-metrics.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

// resolve loads the analysis result addressed by the path id: "new" reads the
// session's unsaved result, anything else goes through owner-scoped
// persistence. Writes the error response itself when resolution fails.
func (h *Handler) resolve(c *gin.Context) (analysis.AnalysisResult, bool) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("dashboardId", id)

	if id == "new" {
		state := h.Sessions.Get(userID)
		if len(state.Result) == 0 {
			respond.Error(c, http.StatusNotFound, "not_found", dashboards.ErrNotFound.Error(), nil)
			return analysis.AnalysisResult{}, false
		}
		var result analysis.AnalysisResult
		if err := json.Unmarshal(state.Result, &result); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to decode session result", nil)
			return analysis.AnalysisResult{}, false
		}
		return result, true
	}

	result, err := h.Dashboards.Result(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, dashboards.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", dashboards.ErrNotFound.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch dashboard", nil)
		}
		return analysis.AnalysisResult{}, false
	}
	return result, true
}

func parseSeverity(c *gin.Context, raw string) (analysis.Severity, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return "", true
	}
	severity := analysis.Severity(raw)
	if !severity.Valid() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "severity must be low, medium, or high", nil)
		return "", false
	}
	return severity, true
}

func parseWindow(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("window"))
	if raw == "" {
		return 0, true
	}
	window, err := strconv.Atoi(raw)
	if err != nil || window < 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "window must be a non-negative integer", nil)
		return 0, false
	}
	return window, true
}
